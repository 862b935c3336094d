package cmd

import (
	"fmt"

	"github.com/leifuss/hestiavizredux/internal/store"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}

		fmt.Printf("Pipeline Status\n")
		fmt.Printf("===============\n")

		extracted := 0
		transformed := 0
		for n := 1; n <= 9; n++ {
			var line string
			if s.BookTextExists(n) {
				extracted++
				bt, err := s.ReadBookText(n)
				if err != nil {
					return err
				}
				mentions := 0
				for _, ch := range bt.Chapters {
					mentions += len(ch.Places)
				}
				line = fmt.Sprintf("extracted: %3d chapters, %4d mentions", len(bt.Chapters), mentions)
			} else {
				line = "not extracted"
			}
			if s.BookPlacesExists(n) {
				transformed++
				line += "  [transformed]"
			}
			fmt.Printf("  Book %d  %s\n", n, line)
		}

		fmt.Printf("\nBooks extracted:   %d / 9\n", extracted)
		fmt.Printf("Books transformed: %d / 9\n", transformed)

		if places, err := s.ReadPlaces(); err == nil {
			fmt.Printf("Gazetteer places:  %d\n", len(places))
		} else {
			fmt.Printf("Gazetteer places:  not yet built\n")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
