// Package notifier turns team table stream records into human-readable
// notifications for the organizers.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/aws/aws-lambda-go/events"
)

const (
	maxSubjectRunes  = 100
	maxPreviewRunes  = 150
	bannerRule       = "═══════════════════════════════════════════════════"
	bannerSeparator  = "───────────────────────────────────────────────────"
	eventInsert      = "INSERT"
	eventModify      = "MODIFY"
	unknownTeamLabel = "Unknown"
)

type Notifier struct {
	sink      Sink
	eventName string
	portalURL string
}

func New(sink Sink, eventName, portalURL string) *Notifier {
	return &Notifier{sink: sink, eventName: eventName, portalURL: portalURL}
}

// Handle processes the batch in order. Only INSERT and MODIFY records produce
// notifications, and delivery failures never fail the batch.
func (n *Notifier) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		var (
			subject, message string
			ok               bool
		)
		switch record.EventName {
		case eventInsert:
			subject, message = n.newTeam(image(record.Change.NewImage))
			ok = true
		case eventModify:
			subject, message, ok = n.teamUpdate(image(record.Change.OldImage), image(record.Change.NewImage))
		default:
			logging.Log.Debugf("NOTIFIER: skipping %s record %s", record.EventName, record.EventID)
		}
		if !ok {
			continue
		}

		subject = truncate(subject, maxSubjectRunes, "")
		if err := n.sink.Publish(ctx, subject, message); err != nil {
			logging.Log.Errorf("NOTIFIER: failed to send %q: %v", subject, err)
			continue
		}
		logging.Log.Infof("NOTIFIER: notification sent: %s", subject)
	}
	return nil
}

func (n *Notifier) newTeam(img image) (string, string) {
	teamID := img.str("team_id", unknownTeamLabel)
	teamName := img.str("team_name", teamID)

	body := fmt.Sprintf(`A new team has joined the hackathon!

Team Name: %s
Team ID: %s
Registered: %s

The team has not yet selected a use case.`, teamName, teamID, img.str("created_at", ""))

	return "🎮 New Team Registered: " + teamName, n.frame("NEW TEAM REGISTRATION", body)
}

// teamUpdate reports the notable differences between the images; ok is false
// when nothing worth announcing changed.
func (n *Notifier) teamUpdate(old, updated image) (subject, message string, ok bool) {
	teamID := updated.str("team_id", unknownTeamLabel)
	teamName := updated.str("team_name", teamID)

	var changes []string

	if oldUC, newUC := old.number("use_case"), updated.number("use_case"); oldUC != newUC && newUC > 0 {
		changes = append(changes, "• Selected Use Case: "+useCaseLabel(newUC))
	}

	if newMembers := updated.list("members"); len(newMembers) != len(old.list("members")) {
		if names := memberNames(newMembers); len(names) > 0 {
			changes = append(changes, fmt.Sprintf("• Team Members (%d): %s", len(names), strings.Join(names, ", ")))
		}
	}

	if solution := updated.str("solution_description", ""); solution != "" && solution != old.str("solution_description", "") {
		changes = append(changes, fmt.Sprintf("• Solution Description Updated:\n    \"%s\"", truncate(solution, maxPreviewRunes, "...")))
	}

	if newServices := updated.list("services_used"); len(newServices) != len(old.list("services_used")) {
		if names := stringValues(newServices); len(names) > 0 {
			changes = append(changes, fmt.Sprintf("• AWS Services (%d): %s", len(names), strings.Join(names, ", ")))
		}
	}

	if len(changes) == 0 {
		return "", "", false
	}

	body := fmt.Sprintf("Team \"%s\" has updated their submission:\n\n%s", teamName, strings.Join(changes, "\n"))
	return "📝 Team Update: " + teamName, n.frame("TEAM UPDATE", body), true
}

func (n *Notifier) frame(title, body string) string {
	return fmt.Sprintf(`
%s
    %s - %s
%s

%s

%s
View all teams at: %s
%s
`, bannerRule, strings.ToUpper(n.eventName), title, bannerRule, body, bannerSeparator, n.portalURL, bannerRule)
}

// truncate cuts s to limit runes, appending suffix only when something was cut.
func truncate(s string, limit int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + suffix
}
