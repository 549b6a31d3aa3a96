package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minjilee/tarot-hours/internal/store"
	"github.com/minjilee/tarot-hours/internal/timeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save today's spread as a journal entry",
		Long:  "Snapshots today's 24 hour slots into the journal. Each date can be saved once; later memo edits on the live day do not change the saved entry.",
		Run:   runSave,
	}

	RootCmd.AddCommand(cmd)
}

func runSave(cmd *cobra.Command, args []string) {
	c, s, _, err := openController(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entry, err := c.SaveToday(cmd.Context())
	switch {
	case errors.Is(err, store.ErrAlreadySaved):
		exitErr("save", fmt.Errorf("already saved today"))
	case errors.Is(err, timeline.ErrNothingToSave):
		exitErr("save", fmt.Errorf("no cards to save — draw first"))
	case err != nil:
		exitErr("save", err)
	}

	b, _ := json.MarshalIndent(entry, "", "  ")
	fmt.Println(string(b))
}
