// Package service contains the comment collection and reply write-back workflows
package service

import (
	"context"

	"replyhub/internal/adapters/notion"
	perr "replyhub/internal/platform/errors"
	"replyhub/internal/platform/logger"
	"replyhub/internal/services/comments/domain"
	"replyhub/internal/services/comments/extract"
	"replyhub/internal/services/comments/schema"
)

const (
	// DefaultBatchSize bounds one generate-and-write batch
	DefaultBatchSize = 25

	// defaultPageSize is the workspace query page size, capped by the API at 100
	defaultPageSize = 100

	// maxReplyLen is the workspace limit for a rich_text/title value
	maxReplyLen = 2000

	samplePreviewLen = 50
	sampleCount      = 5
)

// Service defines the comments service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the comments service
type Svc struct {
	ws         WorkspacePort
	gen        Generator
	databaseID string
	log        logger.Logger
}

// New constructs a comments service
func New(ws WorkspacePort, gen Generator, databaseID string) *Svc {
	if ws == nil {
		panic("comments.Service requires a non nil WorkspacePort")
	}
	if gen == nil {
		panic("comments.Service requires a non nil Generator")
	}
	return &Svc{ws: ws, gen: gen, databaseID: databaseID, log: *logger.Named("comments")}
}

// CollectUnreplied gathers up to TargetCount unreplied rows from the start
// of the database. TargetCount zero means collect everything
func (s *Svc) CollectUnreplied(ctx context.Context, in domain.CollectInput) (domain.CollectOutput, error) {
	comments, _, _, err := s.collect(ctx, in.TargetCount, in.PageSize, "")
	if err != nil {
		return domain.CollectOutput{}, err
	}
	return domain.CollectOutput{Comments: comments, Count: len(comments)}, nil
}

// collect is the pagination core: resolve the reply column once, then walk
// pages forward classifying and extracting rows. Stops mid-page once target
// is reached, discarding the page remainder
func (s *Svc) collect(
	ctx context.Context,
	target, pageSize int,
	startCursor string,
) (out []domain.UnrepliedComment, nextCursor string, hasMore bool, err error) {
	if s.databaseID == "" {
		return nil, "", false, perr.Configf("workspace database id not configured")
	}
	if pageSize <= 0 || pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}

	db, err := s.ws.RetrieveDatabase(ctx, s.databaseID)
	if err != nil {
		return nil, "", false, err
	}
	replyField, ok := schema.ResolveReplyField(db.Order)
	if !ok {
		// every row is then classified as unreplied
		s.log.Warn().Strs("fields", db.Order).Msg("no reply field resolved, treating all rows as unreplied")
	}
	s.log.Debug().Str("reply_field", replyField).Int("fields", len(db.Order)).Msg("schema resolved")

	cursor := startCursor
	out = []domain.UnrepliedComment{}
	for {
		page, qerr := s.ws.QueryDatabase(ctx, s.databaseID, cursor, pageSize)
		if qerr != nil {
			return nil, "", false, qerr
		}
		hasMore = page.HasMore
		nextCursor = page.NextCursor

		for _, row := range page.Results {
			if !extract.NeedsReply(row.Properties, replyField) {
				continue
			}
			c, ok := extract.Extract(row.ID, row.Properties, row.Order, replyField)
			if !ok {
				s.log.Debug().Str("page_id", row.ID).Msg("row skipped, no comment text found")
				continue
			}
			out = append(out, c)
			if target > 0 && len(out) >= target {
				return out, nextCursor, hasMore, nil
			}
		}

		if !hasMore || nextCursor == "" {
			return out, "", false, nil
		}
		cursor = nextCursor
	}
}

// WriteReplies writes each generated reply into the resolved reply column.
// One result per record in the same order; a failed update is a per-record
// failure, never an aborted run
func (s *Svc) WriteReplies(ctx context.Context, records []domain.ReplyRecord) ([]domain.WriteResult, error) {
	if s.databaseID == "" {
		return nil, perr.Configf("workspace database id not configured")
	}

	db, err := s.ws.RetrieveDatabase(ctx, s.databaseID)
	if err != nil {
		return nil, err
	}
	replyField, err := schema.ResolveReplyFieldStrict(db.Order)
	if err != nil {
		return nil, err
	}
	fieldType := db.Properties[replyField].Type
	s.log.Debug().Str("reply_field", replyField).Str("type", fieldType).Int("records", len(records)).
		Msg("writing replies")

	results := make([]domain.WriteResult, 0, len(records))
	for _, rec := range records {
		res := domain.WriteResult{Username: rec.Username, PageID: rec.PageID}

		var payload notion.PropertyWrite
		switch fieldType {
		case "rich_text":
			payload = notion.RichTextValue(truncateReply(rec.GeneratedReply))
		case "title":
			payload = notion.TitleValue(truncateReply(rec.GeneratedReply))
		default:
			res.Error = "unsupported reply field type " + fieldType
			results = append(results, res)
			continue
		}

		if uerr := s.ws.UpdatePageProperties(ctx, rec.PageID, map[string]notion.PropertyWrite{replyField: payload}); uerr != nil {
			s.log.Error().Err(uerr).Str("page_id", rec.PageID).Msg("reply write failed")
			res.Error = uerr.Error()
			results = append(results, res)
			continue
		}
		res.Success = true
		results = append(results, res)
	}
	return results, nil
}

// ProcessUnreplied runs the batch pipeline: collect a batch, generate a
// reply per row, write the batch back, repeat until the database is
// exhausted or MaxBatches is hit
func (s *Svc) ProcessUnreplied(ctx context.Context, in domain.ProcessInput) (domain.ProcessOutput, error) {
	batchSize := in.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	out := domain.ProcessOutput{DryRun: in.DryRun}
	var samples []domain.SampleReply
	cursor := ""
	hasMore := true

	for hasMore && (in.MaxBatches == 0 || out.BatchesProcessed < in.MaxBatches) {
		comments, nextCursor, _, err := s.collect(ctx, batchSize, defaultPageSize, cursor)
		if err != nil {
			return domain.ProcessOutput{}, err
		}
		if len(comments) == 0 {
			hasMore = false
			break
		}
		s.log.Info().Int("batch", out.BatchesProcessed+1).Int("comments", len(comments)).Msg("processing batch")

		records := make([]domain.ReplyRecord, 0, len(comments))
		for _, c := range comments {
			reply := s.gen.Generate(ctx, c.Comment, c.Username)
			records = append(records, domain.ReplyRecord{
				PageID:          c.PageID,
				Username:        c.Username,
				OriginalComment: c.Comment,
				GeneratedReply:  reply,
				Account:         c.Account,
				CreatedTime:     c.CreatedTime,
			})
		}

		if !in.DryRun {
			results, werr := s.WriteReplies(ctx, records)
			if werr != nil {
				return domain.ProcessOutput{}, werr
			}
			out.Ledger = append(out.Ledger, results...)
		}
		out.TotalProcessed += len(records)
		for _, rec := range records {
			if len(samples) >= sampleCount {
				break
			}
			samples = append(samples, domain.SampleReply{
				Username:       rec.Username,
				Comment:        preview(rec.OriginalComment),
				GeneratedReply: rec.GeneratedReply,
			})
		}

		out.BatchesProcessed++
		if len(comments) < batchSize || nextCursor == "" {
			hasMore = false
		}
		cursor = nextCursor
	}

	if out.TotalProcessed == 0 {
		return domain.ProcessOutput{}, perr.NotFoundf(
			"no unreplied comments found after %d batches, check that the reply column exists and some rows are empty",
			out.BatchesProcessed,
		)
	}
	out.HasMore = hasMore
	out.SampleReplies = samples
	return out, nil
}

// Schema reports the resolved reply column and the field inventory
func (s *Svc) Schema(ctx context.Context) (domain.SchemaOutput, error) {
	if s.databaseID == "" {
		return domain.SchemaOutput{}, perr.Configf("workspace database id not configured")
	}
	db, err := s.ws.RetrieveDatabase(ctx, s.databaseID)
	if err != nil {
		return domain.SchemaOutput{}, err
	}
	out := domain.SchemaOutput{Fields: make([]domain.SchemaField, 0, len(db.Order))}
	for _, name := range db.Order {
		out.Fields = append(out.Fields, domain.SchemaField{Name: name, Type: db.Properties[name].Type})
	}
	out.ReplyField, out.Resolved = schema.ResolveReplyField(db.Order)
	return out, nil
}

// truncateReply caps a reply at the workspace value limit, rune-wise
func truncateReply(s string) string {
	r := []rune(s)
	if len(r) <= maxReplyLen {
		return s
	}
	return string(r[:maxReplyLen-3]) + "..."
}

// preview shortens a comment for the sample block
func preview(s string) string {
	r := []rune(s)
	if len(r) <= samplePreviewLen {
		return s
	}
	return string(r[:samplePreviewLen]) + "..."
}
