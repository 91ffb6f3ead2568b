package models

import (
	"errors"
	"fmt"

	"github.com/desertthunder/wrapped/internal/shared"
)

// SlideDescriptor is one screen of narrative content.
type SlideDescriptor struct {
	Title           string `json:"title"`
	Body            string `json:"content"`
	Emoji           string `json:"emoji"`
	BackgroundColor string `json:"bgColor"`
	TextColor       string `json:"textColor"`
	AccentColor     string `json:"accentColor"`
}

// ProfileStats holds the profile figures the model reports from search results.
// Every field is freeform text; any may be empty.
type ProfileStats struct {
	TradeCount string `json:"tradeCount"`
	Rank       string `json:"rank"`
	JoinDate   string `json:"joinDate"`
	MemberID   string `json:"memberId,omitempty"`
	TotalPosts string `json:"totalPosts,omitempty"`
}

// UserSummary is the fetched result for a profile. Insights are in narrative order.
type UserSummary struct {
	Username   string            `json:"username"`
	RankLabel  string            `json:"generatedRank"`
	ProfileURL string            `json:"profileUrl,omitempty"`
	Stats      *ProfileStats     `json:"realStats,omitempty"`
	Insights   []SlideDescriptor `json:"insights"`
}

// Validate checks that the slide has every required field.
func (s SlideDescriptor) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"title", s.Title},
		{"content", s.Body},
		{"emoji", s.Emoji},
		{"bgColor", s.BackgroundColor},
		{"textColor", s.TextColor},
		{"accentColor", s.AccentColor},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("missing %s", f.name))
		}
	}
	return errors.Join(errs...)
}

// Validate checks the summary against the response schema.
// The returned error wraps [shared.ErrSchemaMismatch].
func (u *UserSummary) Validate() error {
	if u == nil {
		return fmt.Errorf("%w: nil summary", shared.ErrSchemaMismatch)
	}
	if u.Username == "" {
		return fmt.Errorf("%w: missing username", shared.ErrSchemaMismatch)
	}
	if u.RankLabel == "" {
		return fmt.Errorf("%w: missing generatedRank", shared.ErrSchemaMismatch)
	}
	if len(u.Insights) == 0 {
		return fmt.Errorf("%w: insights is empty", shared.ErrSchemaMismatch)
	}
	for i, slide := range u.Insights {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("%w: insight %d: %v", shared.ErrSchemaMismatch, i, err)
		}
	}
	return nil
}

// LastIndex returns the index of the final slide, or -1 when there are none.
func (u *UserSummary) LastIndex() int {
	if u == nil {
		return -1
	}
	return len(u.Insights) - 1
}
