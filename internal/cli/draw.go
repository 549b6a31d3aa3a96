package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw all 24 cards for today",
		Long:  "Assigns a card to every hour of today in one shot. The spread is deterministic per day, so drawing again reproduces it and keeps your memos.",
		Run:   runDraw,
	}

	RootCmd.AddCommand(cmd)
}

func runDraw(cmd *cobra.Command, args []string) {
	c, s, cfg, err := openController(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := c.DrawAll(cmd.Context()); err != nil {
		exitErr("draw", err)
	}

	st, phase, err := c.Snapshot(cmd.Context())
	if err != nil {
		exitErr("draw", err)
	}

	if formatFlag == "text" {
		fmt.Printf("%s: drew %d cards (%s)\n", st.Date, st.Slots.DrawnCount(), phase)
		printSpread(st, cfg.Language)
		return
	}

	b, _ := json.MarshalIndent(st, "", "  ")
	fmt.Println(string(b))
}
