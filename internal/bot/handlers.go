package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/avrek/wb-radar/internal/apperr"
	"github.com/avrek/wb-radar/internal/models"
)

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	message := "Hi! I compare your listing against competitors.\n" +
		"/compare <your article> <competitor article> - run a comparison\n" +
		"/history <group id> [days] - comparison history\n" +
		"/stats - your tracking summary"
	if err := ctx.Send(message); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// compareHandler process command /compare <own> <competitor>.
func (b *Bot) compareHandler(ctx telebot.Context) error {
	args := ctx.Args()
	if len(args) != 2 {
		return ctx.Send("Usage: /compare <your article> <competitor article>")
	}

	b.log.Info("User requested quick compare", "username", ctx.Sender().Username)

	resp, err := b.cmp.QuickCompare(context.Background(), ctx.Sender().ID, args[0], args[1], "", true)
	if err != nil {
		return b.replyError(ctx, err)
	}

	if err = ctx.Send(formatComparison(resp)); err != nil {
		return fmt.Errorf("failed to send comparison message: %w", err)
	}

	return nil
}

// historyHandler process command /history <group id> [days].
func (b *Bot) historyHandler(ctx telebot.Context) error {
	args := ctx.Args()
	if len(args) < 1 || len(args) > 2 {
		return ctx.Send("Usage: /history <group id> [days]")
	}

	days := 7
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed <= 0 {
			return ctx.Send("Days must be a positive number.")
		}
		days = parsed
	}

	resp, err := b.cmp.History(context.Background(), args[0], ctx.Sender().ID, days)
	if err != nil {
		return b.replyError(ctx, err)
	}

	if err = ctx.Send(formatHistory(resp)); err != nil {
		return fmt.Errorf("failed to send history message: %w", err)
	}

	return nil
}

// statsHandler process command /stats.
func (b *Bot) statsHandler(ctx telebot.Context) error {
	stats, err := b.cmp.UserStats(context.Background(), ctx.Sender().ID)
	if err != nil {
		return b.replyError(ctx, err)
	}

	if err = ctx.Send(formatStats(stats)); err != nil {
		return fmt.Errorf("failed to send stats message: %w", err)
	}

	return nil
}

// replyError turns a taxonomy error into a short user-facing message.
func (b *Bot) replyError(ctx telebot.Context, err error) error {
	b.log.Warn("Command failed", "username", ctx.Sender().Username, "error", err)

	var message string
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindMalformedData:
		message = "That request doesn't look right. Check the arguments and try again."
	case apperr.KindNotFound:
		message = "I couldn't find that group."
	case apperr.KindConflict:
		message = "That would conflict with the group's current members."
	case apperr.KindExternalFetch:
		message = "The marketplace is not answering right now. Try again later."
	default:
		message = "Something went wrong. Try again later."
	}

	return ctx.Send(message)
}

// formatComparison renders a comparison result as a plain-text message.
func formatComparison(resp *models.ComparisonResponse) string {
	var sb strings.Builder

	if resp.Metrics == nil {
		sb.WriteString("Group created. Run a comparison to get metrics.\n")
		fmt.Fprintf(&sb, "Group ID: %s", resp.GroupID)
		return sb.String()
	}

	m := resp.Metrics
	fmt.Fprintf(&sb, "Grade: %s", m.Grade)
	if m.CompetitivenessIndex != nil {
		fmt.Fprintf(&sb, " (index %.1f)", *m.CompetitivenessIndex)
	}
	sb.WriteString("\n")

	for _, line := range []struct {
		label string
		diff  models.MetricDiff
	}{
		{"Price", m.Price},
		{"Rating", m.Rating},
		{"Discount", m.SPP},
		{"Reviews", m.Reviews},
	} {
		fmt.Fprintf(&sb, "%s: %s\n", line.label, line.diff.Recommendation)
	}

	for _, warning := range resp.Warnings {
		fmt.Fprintf(&sb, "Warning: %s\n", warning)
	}
	fmt.Fprintf(&sb, "Group ID: %s", resp.GroupID)

	return sb.String()
}

// formatHistory renders a history response as a plain-text message.
func formatHistory(resp *models.HistoryResponse) string {
	if resp.TotalCount == 0 {
		return "No snapshots in that period."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d snapshot(s) from %s to %s:\n",
		resp.TotalCount,
		resp.DateFrom.Format("2006-01-02"),
		resp.DateTo.Format("2006-01-02"),
	)
	for _, snapshot := range resp.Snapshots {
		fmt.Fprintf(&sb, "%s", snapshot.SnapshotDate.Format("2006-01-02 15:04"))
		if snapshot.CompetitivenessIndex != nil {
			fmt.Fprintf(&sb, " - index %.1f", *snapshot.CompetitivenessIndex)
		}
		if snapshot.Metrics != nil {
			fmt.Fprintf(&sb, " (%s)", snapshot.Metrics.Grade)
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatStats renders user stats as a plain-text message.
func formatStats(stats *models.UserStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Groups: %d (%d comparison)\n", stats.TotalGroups, stats.ComparisonGroups)
	fmt.Fprintf(&sb, "Tracked articles: %d\n", stats.TotalArticles)
	if stats.AvgCompetitivenessIndex != nil {
		fmt.Fprintf(&sb, "Average competitiveness: %.1f\n", *stats.AvgCompetitivenessIndex)
	}
	if stats.LastComparisonDate != nil {
		fmt.Fprintf(&sb, "Last comparison: %s\n", stats.LastComparisonDate.Format("2006-01-02 15:04"))
	}

	return strings.TrimRight(sb.String(), "\n")
}
