package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minjilee/tarot-hours/internal/catalog"
	"github.com/minjilee/tarot-hours/internal/store"
)

func init() {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Work with saved journal entries",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Run:   runJournalList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry (permanent)",
		Args:  cobra.ExactArgs(1),
		Run:   runJournalRm,
	}

	journalCmd.AddCommand(listCmd, rmCmd)
	RootCmd.AddCommand(journalCmd)
}

func runJournalList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}

	if formatFlag == "text" {
		for _, e := range entries {
			memos := 0
			for _, slot := range e.Slots {
				if slot.Memo != "" {
					memos++
				}
			}
			name := ""
			if slot := e.Slots[12]; slot.IsDrawn {
				if card, err := catalog.Get(slot.CardID); err == nil {
					name = "  noon: " + card.Name.Resolve(cfg.Language)
				}
			}
			fmt.Printf("%s  %s  %d memos%s\n", e.Date, e.ID, memos, name)
		}
		return
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}

func runJournalRm(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	id := args[0]
	err = s.Delete(cmd.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		exitErr("rm", fmt.Errorf("nothing to delete"))
	case err != nil:
		exitErr("rm", err)
	}

	fmt.Printf(`{"ok":true,"id":%q}`+"\n", id)
}
