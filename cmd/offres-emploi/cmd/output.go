package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/emploitools/offresemploi/pkg/poleemploi"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printOffresTable(offres []poleemploi.Offre) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tCONTRACT\tLOCATION\tCOMPANY\tCREATED\n")
	for i := range offres {
		o := &offres[i]
		lieu := "-"
		if o.LieuTravail != nil && o.LieuTravail.Libelle != "" {
			lieu = o.LieuTravail.Libelle
		}
		entreprise := "-"
		if o.Entreprise != nil && o.Entreprise.Nom != "" {
			entreprise = truncate(o.Entreprise.Nom, 30)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			truncate(o.Intitule, 45),
			o.TypeContrat,
			truncate(lieu, 25),
			entreprise,
			o.DateCreation,
		)
	}
	return tw.finish()
}

func printFilterRows(rows []poleemploi.FilterRow) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("FILTER\tVALUE\tCOUNT\n")
	for i := range rows {
		tw.writef("%s\t%s\t%d\n",
			rows[i].Filtre,
			rows[i].ValeurPossible,
			rows[i].NbResultats,
		)
	}
	return tw.finish()
}

func printRefEntries(entries []poleemploi.RefEntry) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("CODE\tLABEL\n")
	for i := range entries {
		tw.writef("%s\t%s\n", entries[i].Code, entries[i].Libelle)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
