package services

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	minSlides = 15
	maxSlides = 18
)

var wrappedPrompt = template.Must(template.New("wrapped").Parse(`You are a data analyst who knows the r10.net webmaster forum inside out.
Use Google Search to research the r10.net profile at {{.ProfileURL}} and write a {{.Year}} "wrapped" year-in-review for it.

Collect what you can find:
- the member's iTrader (trade feedback) score
- the forum rank (e.g. Kurumsal Plus, Platin, Altın, Standart)
- the join date and member ID
- the categories they trade or post in most (SEO, Adsense, domains, ...)

Write between {{.MinSlides}} and {{.MaxSlides}} slides in Turkish, in this order:
an opening slide, an identity card, the trade report, the strongest category, posting habits,
years on the forum, forum jargon, a humorous slide, an estimated market value, a forum archetype,
the best moment of {{.Year}}, a grand finale awarding a playful rank, then thank-you slides.

Style: short, bold, upper-case titles; vivid high-contrast neon colors in #RRGGBB form;
a single emoji per slide; r10 jargon ("hayırlı satışlar", "PM atıldı", "konu kilit", "ref", "itrader").
Focus strictly on {{.Year}}.

Put the playful rank in generatedRank and the figures you found in realStats.
Respond with a single JSON object and nothing else, shaped like this:
{"username": "...", "generatedRank": "...",
 "realStats": {"tradeCount": "...", "rank": "...", "joinDate": "...", "memberId": "...", "totalPosts": "..."},
 "insights": [{"title": "...", "content": "...", "emoji": "...", "bgColor": "#RRGGBB", "textColor": "#RRGGBB", "accentColor": "#RRGGBB"}]}
Every insight needs all six fields.`))

type promptData struct {
	ProfileURL string
	Year       int
	MinSlides  int
	MaxSlides  int
}

// BuildPrompt renders the generation prompt for a profile.
func BuildPrompt(profileURL string, year int) (string, error) {
	var buf bytes.Buffer
	data := promptData{ProfileURL: profileURL, Year: year, MinSlides: minSlides, MaxSlides: maxSlides}
	if err := wrappedPrompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
