package services

import (
	"math/rand/v2"
	"strings"
	"text/template"

	"campaign-manager/domain/core/entities"
)

var templateFuncs = template.FuncMap{
	"prefix": func(n int, s string) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n])
	},
	"firstWord": func(s string) string {
		return strings.SplitN(s, " ", 2)[0]
	},
}

// messageTemplates is the fixed, ordered set of outreach messages.
var messageTemplates = []*template.Template{
	template.Must(template.New("short").Funcs(templateFuncs).Parse(`Hi {{.Name}},

I noticed your impressive work as {{.JobTitle}} at {{.Company}}. Your experience in {{.Location}} caught my attention, especially your background in "{{prefix 30 .Summary}}...".

Our campaign management and outreach automation tool has helped professionals like you improve lead generation by up to 40%. Would you be open to a quick chat about how we could help streamline your outreach efforts?

Looking forward to connecting,
[Your Name]`)),
	template.Must(template.New("industry").Funcs(templateFuncs).Parse(`Hello {{.Name}},

I came across your profile and was impressed by your role as {{.JobTitle}} at {{.Company}}. Your experience in {{.Location}} is exactly the kind of background we've seen success with.

I'm reaching out because our campaign management platform has been helping professionals in {{firstWord .Company}} improve their lead generation and outreach efforts. Based on your focus on "{{prefix 25 .Summary}}...", I think you might find our automation tools particularly valuable.

Would you be interested in a brief conversation about how we might help?

Best regards,
[Your Name]`)),
	template.Must(template.New("call").Funcs(templateFuncs).Parse(`{{.Name}},

Your work as {{.JobTitle}} at {{.Company}} caught my attention. I'm particularly impressed by your experience in {{.Location}} and your focus on "{{prefix 35 .Summary}}...".

I lead growth at a company that provides campaign management and outreach automation tools specifically designed for professionals in your industry. Our clients typically see a 35% increase in response rates within the first month.

Would you be open to a 15-minute call to explore if our solution might be valuable for your team at {{.Company}}?

Warm regards,
[Your Name]`)),
}

// MessageGenerator renders one of a fixed set of outreach templates for a
// profile. Selection is random unless a picker is supplied.
type MessageGenerator struct {
	pick func(n int) int
}

// NewMessageGenerator creates a generator. A nil pick selects uniformly at random.
func NewMessageGenerator(pick func(n int) int) *MessageGenerator {
	if pick == nil {
		pick = rand.IntN
	}
	return &MessageGenerator{pick: pick}
}

// TemplateCount returns how many templates the generator chooses from
func (g *MessageGenerator) TemplateCount() int {
	return len(messageTemplates)
}

// Generate renders a message for f. Callers validate f beforehand.
func (g *MessageGenerator) Generate(f entities.ProfileFields) string {
	i := g.pick(len(messageTemplates))
	if i < 0 || i >= len(messageTemplates) {
		i = 0
	}
	var b strings.Builder
	// Templates are static and only read string fields, so execution cannot fail.
	_ = messageTemplates[i].Execute(&b, f)
	return b.String()
}
