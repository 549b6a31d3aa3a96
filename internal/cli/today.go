package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minjilee/tarot-hours/internal/catalog"
	"github.com/minjilee/tarot-hours/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's full 24-hour spread",
		Run:   runToday,
	}

	RootCmd.AddCommand(cmd)
}

func runToday(cmd *cobra.Command, args []string) {
	c, s, cfg, err := openController(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	st, phase, err := c.Snapshot(cmd.Context())
	if err != nil {
		exitErr("today", err)
	}

	if formatFlag == "text" {
		fmt.Printf("%s (%s)\n", st.Date, phase)
		printSpread(st, cfg.Language)
		return
	}

	out := struct {
		Date  model.Date  `json:"date"`
		Phase string      `json:"phase"`
		Slots model.Slots `json:"slots"`
	}{st.Date, string(phase), st.Slots}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func printSpread(st model.TimelineState, lang string) {
	for _, slot := range st.Slots {
		if !slot.IsDrawn {
			fmt.Printf("%02d:00  -\n", slot.Hour)
			continue
		}
		name := slot.CardID
		if card, err := catalog.Get(slot.CardID); err == nil {
			name = card.Name.Resolve(lang)
		}
		if slot.Memo != "" {
			fmt.Printf("%02d:00  %s  # %s\n", slot.Hour, name, slot.Memo)
		} else {
			fmt.Printf("%02d:00  %s\n", slot.Hour, name)
		}
	}
}
