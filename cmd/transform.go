package cmd

import (
	"fmt"
	"os"

	"github.com/leifuss/hestiavizredux/internal/model"
	"github.com/leifuss/hestiavizredux/internal/recogito"
	"github.com/leifuss/hestiavizredux/internal/reconcile"
	"github.com/leifuss/hestiavizredux/internal/store"
	"github.com/spf13/cobra"
)

var transformCSV string

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Reconcile Recogito annotations against extracted chapters and build the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath := transformCSV
		if !cmd.Flags().Changed("csv") {
			csvPath = cfg.Input.CSV
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}

		// Chapter boundaries come from the extract pass's output files.
		bookTexts := make(map[int]*model.BookText)
		chapterInfo := make(map[int]reconcile.ChapterInfo)
		for n := 1; n <= 9; n++ {
			if !s.BookTextExists(n) {
				fmt.Fprintf(os.Stderr, "WARNING: no extracted text for Book %d (run extract first)\n", n)
				continue
			}
			bt, err := s.ReadBookText(n)
			if err != nil {
				return err
			}
			bookTexts[n] = bt

			maxID := 0
			for _, ch := range bt.Chapters {
				if ch.ID > maxID {
					maxID = ch.ID
				}
			}
			chapterInfo[n] = reconcile.ChapterInfo{Count: len(bt.Chapters), MaxID: maxID}
			logVerbose("Book %d: %d chapters (max id %d)", n, len(bt.Chapters), maxID)
		}

		fmt.Printf("Parsing %s...\n", csvPath)
		anns, stats, err := recogito.ParseFile(csvPath)
		if err != nil {
			return err
		}
		fmt.Printf("Retained %d place annotations (%d filtered, %d missing book, %d missing offset)\n",
			len(anns), stats.Filtered, stats.MissingBook, stats.MissingOffset)

		gaz := reconcile.BuildGazetteer(anns)
		fmt.Printf("Found %d unique places\n", gaz.Len())

		fmt.Println("Assigning chapters to annotations...")
		reconcile.AssignChapters(anns, bookTexts)
		gaz.BackfillChapters(anns)

		bookPlaces := reconcile.BuildBookPlaces(anns)
		index := reconcile.BuildIndex(chapterInfo, bookPlaces)

		if err := s.WriteBooksIndex(index); err != nil {
			return err
		}
		fmt.Println("Wrote books.json")

		for n := 1; n <= 9; n++ {
			bk, ok := bookPlaces[n]
			if !ok {
				continue
			}
			if err := s.WriteBookPlaces(bk); err != nil {
				return err
			}
			fmt.Printf("Wrote book-%d.json (%d chapters with places)\n", n, len(bk.Chapters))
		}

		if err := s.WritePlaces(gaz.Places()); err != nil {
			return err
		}
		fmt.Printf("Wrote places.json (%d places)\n", gaz.Len())

		fmt.Println("Done.")
		return nil
	},
}

func init() {
	transformCmd.Flags().StringVar(&transformCSV, "csv", "", "Path to the Recogito CSV export (overrides config)")
	rootCmd.AddCommand(transformCmd)
}
