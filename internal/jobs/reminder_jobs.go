package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/logger"
	"lendledger-backend/internal/utils"
)

// maxRemindersPerUser caps outgoing mail per user per run, one email per
// bucket at most.
const maxRemindersPerUser = 3

type reminderBucket struct {
	name    string
	subject string
	lede    string
	items   []domain.ReminderItem
}

// SendCollectionReminders emails each lender a digest of interest collections
// coming due in two days, due today, and overdue. One email per user per
// bucket; a user with items in every bucket gets three emails.
func (jr *JobRunner) SendCollectionReminders() {
	jr.runWithRecovery("SendCollectionReminders", func() {
		if !jr.services.Email.Enabled() {
			logger.Info("Email transport not configured, skipping collection reminders")
			return
		}

		ctx := context.Background()
		today := utils.StartOfDay(time.Now())
		tomorrow := today.AddDate(0, 0, 1)
		twoDayStart := today.AddDate(0, 0, 2)
		twoDayEnd := today.AddDate(0, 0, 3)

		upcoming, err := jr.store.ListRemindersDueBetween(ctx, twoDayStart, twoDayEnd)
		if err != nil {
			logger.Error("Failed to query upcoming reminders", "error", err)
			return
		}
		dueToday, err := jr.store.ListRemindersDueBetween(ctx, today, tomorrow)
		if err != nil {
			logger.Error("Failed to query due-today reminders", "error", err)
			return
		}
		overdue, err := jr.store.ListRemindersOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to query overdue reminders", "error", err)
			return
		}

		buckets := []reminderBucket{
			{
				name:    "upcoming",
				subject: "Interest collections due in 2 days",
				lede:    "The following interest collections are due in two days:",
				items:   upcoming,
			},
			{
				name:    "due_today",
				subject: "Interest collections due today",
				lede:    "The following interest collections are due today:",
				items:   dueToday,
			},
			{
				name:    "overdue",
				subject: "Overdue interest collections",
				lede:    "The following interest collections are overdue:",
				items:   overdue,
			},
		}

		sentPerUser := make(map[string]int)
		sent := 0
		for _, bucket := range buckets {
			byOwner := groupByOwner(bucket.items)
			for email, items := range byOwner {
				if sentPerUser[email] >= maxRemindersPerUser {
					continue
				}

				body := buildReminderBody(items[0].OwnerName, bucket.lede, items)
				if err := jr.services.Email.Send(ctx, email, items[0].OwnerName, bucket.subject, body); err != nil {
					logger.Error("Failed to send collection reminder",
						"bucket", bucket.name,
						"email", email,
						"error", err)
					continue
				}

				sentPerUser[email]++
				sent++
				logger.Debug("Sent collection reminder",
					"bucket", bucket.name,
					"email", email,
					"collections", len(items))
			}
		}

		logger.Info("Collection reminders sent", "count", sent)
	})
}

// groupByOwner buckets reminder rows by the owner's email so each lender gets
// a single digest per bucket. Map order varies between runs; each key is
// handled exactly once either way.
func groupByOwner(items []domain.ReminderItem) map[string][]domain.ReminderItem {
	byOwner := make(map[string][]domain.ReminderItem)
	for _, item := range items {
		byOwner[item.OwnerEmail] = append(byOwner[item.OwnerEmail], item)
	}
	return byOwner
}

func buildReminderBody(ownerName, lede string, items []domain.ReminderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n%s\n\n", ownerName, lede)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %s due on %s\n",
			item.BorrowerName,
			item.ExpectedAmount.StringFixed(2),
			item.Collection.DueDate.Format("Jan 2, 2006"))
	}
	b.WriteString("\nYou can mark these as collected in your ledger once received.\n\nLendLedger\n")
	return b.String()
}
