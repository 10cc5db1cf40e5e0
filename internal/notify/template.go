package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jobtrack/jobtrack/internal/data/repository"
)

// Content is the rendered form of one notification: the realtime title and
// message, and the email subject and HTML body.
type Content struct {
	Title   string
	Message string
	Subject string
	Body    string
}

// occasionTemplate parameterizes the shared email layout per occasion.
type occasionTemplate struct {
	title    string
	message  func(job *repository.Job) string
	subject  string
	intro    string
	dateItem string
	footer   string
	dateOf   func(job *repository.Job) time.Time
}

var occasionTemplates = map[Occasion]occasionTemplate{
	OccasionCreated: {
		title: "New Job Application Added",
		message: func(job *repository.Job) string {
			return fmt.Sprintf("You have added a new application for %s", job.Company)
		},
		subject:  "New Job Application Added: %s",
		intro:    "You have added a new job application:",
		dateItem: "Applied Date",
		footer:   "Login to your dashboard to manage your application.",
		dateOf:   func(job *repository.Job) time.Time { return job.AppliedDate },
	},
	OccasionStatusChanged: {
		title: "Job Status Updated",
		message: func(job *repository.Job) string {
			return fmt.Sprintf("Your application at %s status changed to %s", job.Company, job.Status)
		},
		subject:  "Job Application Status Update: %s",
		intro:    "Your job application status has been updated:",
		dateItem: "Updated Date",
		footer:   "Login to your dashboard to view more details.",
		dateOf:   func(job *repository.Job) time.Time { return job.LastUpdated },
	},
}

var bodyTemplate = template.Must(template.New("email").Parse(`<h2>{{.Title}}</h2>
<p>{{.Intro}}</p>
<ul>
  <li><strong>Company:</strong> {{.Company}}</li>
  <li><strong>Role:</strong> {{.Role}}</li>
  <li><strong>Status:</strong> {{.Status}}</li>
  <li><strong>{{.DateItem}}:</strong> {{.Date}}</li>
</ul>
<p>{{.Footer}}</p>
`))

// Render produces the notification content for an occasion, or nil if the
// occasion is unknown.
func Render(occasion Occasion, job *repository.Job) *Content {
	t, ok := occasionTemplates[occasion]
	if !ok {
		return nil
	}

	var body strings.Builder
	err := bodyTemplate.Execute(&body, map[string]any{
		"Title":    t.title,
		"Intro":    t.intro,
		"Company":  job.Company,
		"Role":     job.Role,
		"Status":   job.Status,
		"DateItem": t.dateItem,
		"Date":     t.dateOf(job).Format("January 2, 2006"),
		"Footer":   t.footer,
	})
	if err != nil {
		// Template is static; execution only fails on writer errors, which
		// strings.Builder never returns.
		return nil
	}

	return &Content{
		Title:   t.title,
		Message: t.message(job),
		Subject: fmt.Sprintf(t.subject, job.Company),
		Body:    body.String(),
	}
}
