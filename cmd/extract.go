package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/leifuss/hestiavizredux/internal/model"
	"github.com/leifuss/hestiavizredux/internal/store"
	"github.com/leifuss/hestiavizredux/internal/tei"
	"github.com/spf13/cobra"
)

var extractTEI string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract chapter-segmented text and place mentions from the TEI source",
	RunE: func(cmd *cobra.Command, args []string) error {
		teiPath := extractTEI
		if !cmd.Flags().Changed("tei") {
			teiPath = cfg.Input.TEI
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}

		fmt.Printf("Extracting text from %s...\n", teiPath)
		doc, err := tei.Load(teiPath)
		if err != nil {
			return err
		}
		if title := doc.Title(); title != "" {
			logVerbose("document title: %s", title)
		}

		markup, err := doc.BodyMarkup()
		if err != nil {
			return err
		}

		books, err := tei.SplitBooks(markup)
		if err != nil {
			return err
		}
		fmt.Printf("Found %d books\n", len(books))

		for n := 1; n <= 9; n++ {
			raw, ok := books[n]
			if !ok {
				fmt.Fprintf(os.Stderr, "WARNING: Book %d not found in TEI\n", n)
				continue
			}

			fmt.Printf("Processing Book %d...\n", n)

			cleaned := tei.Clean(raw)
			chapterTexts, markersFound := tei.Segment(cleaned)
			if !markersFound {
				fmt.Fprintf(os.Stderr, "WARNING: no chapter markers in Book %d, keeping it as a single chapter\n", n)
			}

			ids := make([]int, 0, len(chapterTexts))
			for id := range chapterTexts {
				ids = append(ids, id)
			}
			sort.Ints(ids)

			book := &model.BookText{ID: n, Title: model.BookTitle(n)}
			mentionCount := 0
			for _, id := range ids {
				text, places := tei.Extract(chapterTexts[id])
				mentionCount += len(places)
				book.Chapters = append(book.Chapters, model.Chapter{
					ID:     id,
					Text:   text,
					Places: places,
				})
			}

			if err := s.WriteBookText(book); err != nil {
				return err
			}
			fmt.Printf("  %d chapters (ids %d-%d), %d place mentions\n",
				len(ids), ids[0], ids[len(ids)-1], mentionCount)
		}

		fmt.Println("Done.")
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractTEI, "tei", "", "Path to the TEI XML source (overrides config)")
	rootCmd.AddCommand(extractCmd)
}
