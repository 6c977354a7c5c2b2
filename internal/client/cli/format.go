package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/creatorhub/internal/models"
)

func formatTransaction(t models.CreditTransaction) string {
	return fmt.Sprintf("%s  %+5d  %s", t.CreatedAt.Local().Format("2006-01-02 15:04"), t.Amount, t.Reason)
}

const contentWidth = 80

func formatItem(it models.FeedItem) string {
	var flags []string
	if it.Saved {
		flags = append(flags, "saved")
	}
	if it.Reported {
		flags = append(flags, "reported")
	}

	content := it.Content
	if len([]rune(content)) > contentWidth {
		content = string([]rune(content)[:contentWidth-3]) + "..."
	}

	line := fmt.Sprintf("[%s] %-7s @%s: %s", it.ID, it.Source, it.Author, content)
	if len(flags) > 0 {
		line += " (" + strings.Join(flags, ", ") + ")"
	}
	return line
}
