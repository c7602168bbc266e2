// Package extract classifies workspace rows and pulls comment data out of
// their typed property payloads
package extract

import (
	"math/rand"
	"strconv"
	"strings"

	"replyhub/internal/adapters/notion"
	"replyhub/internal/services/comments/domain"
)

// randIntn is swapped in tests for deterministic placeholder names
var randIntn = rand.Intn

// NeedsReply reports whether the row still lacks a reply. A missing reply
// column or missing row value counts as unreplied; rich_text and title are
// unreplied when they have zero segments; any other type when its payload
// is absent or empty
func NeedsReply(props map[string]notion.Property, replyField string) bool {
	if replyField == "" {
		return true
	}
	p, ok := props[replyField]
	if !ok {
		return true
	}
	switch p.Type {
	case "rich_text":
		return len(p.RichText) == 0
	case "title":
		return len(p.Title) == 0
	default:
		return !p.HasValue()
	}
}

// Extract pulls an UnrepliedComment out of a row. order must be the wire
// order of property names; the fallback scans are first-match. Returns
// false when no comment text can be found, those rows are skipped
func Extract(pageID string, props map[string]notion.Property, order []string, replyField string) (domain.UnrepliedComment, bool) {
	text := commentText(props, order, replyField)
	if text == "" {
		return domain.UnrepliedComment{}, false
	}

	out := domain.UnrepliedComment{PageID: pageID, Comment: text}

	if p, ok := props["Username"]; ok && len(p.RichText) > 0 {
		out.Username = p.RichText[0].PlainText
	}
	if out.Username == "" {
		out.Username = "user_" + strconv.Itoa(randIntn(1000))
	}
	if p, ok := props["Account"]; ok && len(p.RichText) > 0 {
		out.Account = p.RichText[0].PlainText
	}
	if p, ok := props["Created time"]; ok && p.Date != nil {
		out.CreatedTime = p.Date.Start
	}
	return out, true
}

// commentText walks the comment search tiers in order
func commentText(props map[string]notion.Property, order []string, replyField string) string {
	// tier 1: the literal "Comment" column, interpreted per declared type
	if p, ok := props["Comment"]; ok {
		if s := literalValue(p); s != "" {
			return s
		}
	}

	// tier 2: any column whose lowercase name contains "comment", except
	// the literal one, restricted to rich_text and title
	for _, name := range order {
		if name == "Comment" || !strings.Contains(strings.ToLower(name), "comment") {
			continue
		}
		p := props[name]
		switch p.Type {
		case "rich_text":
			if len(p.RichText) > 0 {
				return p.RichText[0].PlainText
			}
		case "title":
			if len(p.Title) > 0 {
				return p.Title[0].PlainText
			}
		}
	}

	// tier 3: any remaining rich_text column other than the reply column
	for _, name := range order {
		if name == replyField {
			continue
		}
		p := props[name]
		if p.Type == "rich_text" && len(p.RichText) > 0 {
			return p.RichText[0].PlainText
		}
	}
	return ""
}

// literalValue interprets the "Comment" column by its declared type
func literalValue(p notion.Property) string {
	switch p.Type {
	case "rich_text":
		if len(p.RichText) > 0 {
			return p.RichText[0].PlainText
		}
	case "title":
		if len(p.Title) > 0 {
			return p.Title[0].PlainText
		}
	case "text":
		if p.Text != nil {
			return p.Text.Content
		}
	case "url":
		return p.URL
	case "number":
		if p.Number != nil {
			return strconv.FormatFloat(*p.Number, 'f', -1, 64)
		}
	case "select":
		if p.Select != nil {
			return p.Select.Name
		}
	case "email":
		return p.Email
	case "phone_number":
		return p.PhoneNumber
	}
	return ""
}
