package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/minjilee/tarot-hours/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the card for the current hour",
		Run:   runNow,
	}

	cmd.Flags().Bool("watch", false, "Keep running and print the card whenever the hour changes")

	RootCmd.AddCommand(cmd)
}

type nowOutput struct {
	Date  model.Date  `json:"date"`
	Hour  int         `json:"hour"`
	Card  *model.Card `json:"card"`
	Drawn bool        `json:"drawn"`
}

func runNow(cmd *cobra.Command, args []string) {
	watch, _ := cmd.Flags().GetBool("watch")

	c, s, cfg, err := openController(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	show := func() {
		card, ok, err := c.CurrentCard(cmd.Context())
		if err != nil {
			exitErr("now", err)
		}
		st, _, err := c.Snapshot(cmd.Context())
		if err != nil {
			exitErr("now", err)
		}
		hour := time.Now().Hour()

		if formatFlag == "text" {
			if !ok {
				fmt.Printf("%02d:00  no card drawn yet\n", hour)
				return
			}
			fmt.Printf("%02d:00  %s — %s\n", hour,
				card.Name.Resolve(cfg.Language), card.Description.Resolve(cfg.Language))
			return
		}

		out := nowOutput{Date: st.Date, Hour: hour, Drawn: ok}
		if ok {
			out.Card = &card
		}
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(b))
	}

	show()
	if !watch {
		return
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// Background rollover polling; the display loop below only prints.
	go c.Run(ctx, cfg.PollInterval)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()
	last := time.Now().Hour()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h := time.Now().Hour(); h != last {
				last = h
				show()
			}
		}
	}
}
