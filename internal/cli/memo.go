package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minjilee/tarot-hours/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "memo [text]",
		Short: "Attach a memo to an hour",
		Long:  "Attach a memo to a drawn hour. Text can be a positional arg or piped via stdin. By default the memo goes on today's live timeline; --saved edits an already-saved journal entry instead.",
		Run:   runMemo,
	}

	cmd.Flags().IntP("hour", "H", -1, "Hour 0-23 (required)")
	cmd.Flags().Bool("saved", false, "Edit the saved journal entry instead of the live day")
	cmd.Flags().String("date", "", "Entry date for --saved (default: today)")

	cmd.MarkFlagRequired("hour")

	RootCmd.AddCommand(cmd)
}

func runMemo(cmd *cobra.Command, args []string) {
	hour, _ := cmd.Flags().GetInt("hour")
	saved, _ := cmd.Flags().GetBool("saved")
	dateStr, _ := cmd.Flags().GetString("date")

	// Positional arg first, then stdin.
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			text = string(b)
		}
	}
	text = strings.TrimSpace(text)

	c, s, _, err := openController(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if saved {
		date := model.DateOf(time.Now())
		if dateStr != "" {
			date, err = model.ParseDate(dateStr)
			if err != nil {
				exitErr("memo", err)
			}
		}
		if err := c.UpdateSavedMemo(cmd.Context(), date, hour, text); err != nil {
			exitErr("memo", err)
		}
		fmt.Printf(`{"ok":true,"date":%q,"hour":%d,"saved":true}`+"\n", date, hour)
		return
	}

	if err := c.SetMemo(cmd.Context(), hour, text); err != nil {
		exitErr("memo", err)
	}
	fmt.Printf(`{"ok":true,"hour":%d}`+"\n", hour)
}
