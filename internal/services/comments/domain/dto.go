// Package domain holds DTOs for comments http and service contracts
package domain

// UnrepliedComment is one workspace row that still needs a reply.
// Comment is always non-empty; rows without extractable text are skipped
type UnrepliedComment struct {
	PageID      string `json:"page_id" example:"8a1f0c2e-5b7d-4c1a-9f3e-1234567890ab"`
	Comment     string `json:"comment" example:"this is so good 🔥"`
	Username    string `json:"username" example:"jane_doe"`
	Account     string `json:"account,omitempty" example:"@brandhandle"`
	CreatedTime string `json:"created_time,omitempty" example:"2025-06-01T12:00:00.000Z"`
}

// ReplyRecord pairs a row with its generated reply, ready to write back
type ReplyRecord struct {
	PageID          string `json:"page_id" validate:"required" example:"8a1f0c2e-5b7d-4c1a-9f3e-1234567890ab"`
	Username        string `json:"username" example:"jane_doe"`
	OriginalComment string `json:"original_comment" example:"this is so good 🔥"`
	GeneratedReply  string `json:"generated_reply" validate:"required" example:"so glad you liked it 🙌"`
	Account         string `json:"account,omitempty"`
	CreatedTime     string `json:"created_time,omitempty"`
}

// WriteResult is the per-record outcome of a write-back pass
type WriteResult struct {
	Username string `json:"username" example:"jane_doe"`
	PageID   string `json:"page_id,omitempty"`
	Success  bool   `json:"success" example:"true"`
	Error    string `json:"error,omitempty"`
}

// CollectInput selects how many unreplied rows to gather and page sizing
type CollectInput struct {
	TargetCount int `json:"target_count,omitempty" validate:"omitempty,min=1" example:"25"`
	PageSize    int `json:"page_size,omitempty" validate:"omitempty,min=1,max=100" example:"100"`
}

// CollectOutput is the collect-only response
type CollectOutput struct {
	Comments []UnrepliedComment `json:"comments"`
	Count    int                `json:"count" example:"25"`
}

// ProcessInput tunes the batch pipeline
type ProcessInput struct {
	MaxBatches int  `json:"max_batches,omitempty" validate:"omitempty,min=1" example:"4"`
	BatchSize  int  `json:"batch_size,omitempty" validate:"omitempty,min=1,max=100" example:"25"`
	DryRun     bool `json:"dry_run,omitempty" example:"false"`
}

// SampleReply is a preview row in the process response
type SampleReply struct {
	Username       string `json:"username"`
	Comment        string `json:"comment"`
	GeneratedReply string `json:"generated_reply"`
}

// ProcessOutput summarizes a full batch run
type ProcessOutput struct {
	BatchesProcessed int           `json:"total_batches_processed" example:"2"`
	TotalProcessed   int           `json:"total_comments_processed" example:"37"`
	HasMore          bool          `json:"has_more_to_process" example:"false"`
	DryRun           bool          `json:"dry_run,omitempty"`
	SampleReplies    []SampleReply `json:"sample_replies,omitempty"`
	Ledger           []WriteResult `json:"ledger,omitempty"`
}

// SchemaField is one column in the schema inventory
type SchemaField struct {
	Name string `json:"name" example:"Comment"`
	Type string `json:"type" example:"rich_text"`
}

// SchemaOutput reports the resolved reply column and the field inventory
type SchemaOutput struct {
	ReplyField string        `json:"reply_field,omitempty" example:"Reply"`
	Resolved   bool          `json:"resolved" example:"true"`
	Fields     []SchemaField `json:"fields"`
}
