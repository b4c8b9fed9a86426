package post

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/pkg/validation"
)

// ExcerptWords is how much of a post body listings show.
const ExcerptWords = 10

var ErrNotFound = errors.New("post not found")

// FieldError is a form value rejected after binding, e.g. an unknown category.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// pubDateLayouts are accepted for pub_date, the first being what the
// datetime-local input sends.
var pubDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// PostForm is the create/edit form. The image arrives as a multipart file
// and is handled separately.
type PostForm struct {
	Title      string `form:"title"       binding:"required,max=256"`
	Text       string `form:"text"        binding:"required"`
	PubDate    string `form:"pub_date"`
	Location   string `form:"location"`
	Category   string `form:"category"    binding:"required"`
	ClearImage bool   `form:"image_clear"`
}

// PostInput is a cleaned PostForm.
type PostInput struct {
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID uint
	LocationID *uint
	// Image replaces the stored image key when non-empty.
	Image      string
	ClearImage bool
}

// FormFrom prefills the edit form from a stored post.
func FormFrom(p *models.PostModel) PostForm {
	f := PostForm{
		Title:   p.Title,
		Text:    p.Text,
		PubDate: p.PubDate.In(time.Local).Format(pubDateLayouts[0]),
	}
	if p.CategoryID != nil {
		f.Category = strconv.FormatUint(uint64(*p.CategoryID), 10)
	}
	if p.LocationID != nil {
		f.Location = strconv.FormatUint(uint64(*p.LocationID), 10)
	}
	return f
}

// NewForm is the blank create form, dated now.
func NewForm(now time.Time) PostForm {
	return PostForm{PubDate: now.In(time.Local).Format(pubDateLayouts[0])}
}

// Clean converts raw values. An empty pub_date means now.
func (f *PostForm) Clean(now time.Time) (*PostInput, map[string]string) {
	errs := map[string]string{}
	in := &PostInput{
		Title:      strings.TrimSpace(f.Title),
		Text:       f.Text,
		PubDate:    now,
		ClearImage: f.ClearImage,
	}
	if in.Title == "" {
		errs["title"] = "This field is required."
	}
	if strings.TrimSpace(in.Text) == "" {
		errs["text"] = "This field is required."
	}

	if raw := strings.TrimSpace(f.PubDate); raw != "" {
		parsed, err := parsePubDate(raw)
		if err != nil {
			errs["pub_date"] = "Enter a valid date/time."
		} else {
			in.PubDate = parsed
		}
	}

	id, err := parseChoice(f.Category)
	switch {
	case err != nil || id == nil:
		errs["category"] = "Select a valid choice."
	default:
		in.CategoryID = *id
	}

	if id, err := parseChoice(f.Location); err != nil {
		errs["location"] = "Select a valid choice."
	} else {
		in.LocationID = id
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return in, nil
}

func parsePubDate(raw string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// parseChoice reads an optional select value. Empty means no choice.
func parseChoice(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, fmt.Errorf("invalid choice %q", raw)
	}
	id := uint(n)
	return &id, nil
}

// bindErrors merges binding failures with Clean's messages.
func bindErrors(bindErr error, cleanErrs map[string]string) map[string]string {
	out := validation.FieldErrors(bindErr)
	if out == nil {
		out = map[string]string{}
	}
	for k, v := range cleanErrs {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}
