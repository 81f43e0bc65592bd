package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/cqkv/campdb"
	"github.com/cqkv/campdb/model"
)

type Config struct {
	Db     string `usage:"campsite database file"`
	Sites  string `usage:"delimited campsite text file to import, empty skips the import"`
	Seed   int64  `usage:"random seed, 0 seeds from system entropy"`
	Strict bool   `usage:"reject ranges outside the stored records"`
	Sync   bool   `usage:"sync the database after every write"`
}

func main() {

	c := Config{
		Db:    "campsites.db",
		Sites: "sites.txt",
	}
	goconfig.Read(&c)

	if err := run(c, os.Stdout); err != nil {
		log.Fatalf("ERROR: %s", err)
	}
}

func run(c Config, w io.Writer) (err error) {
	ops := []campdb.Option{
		campdb.WithStrictRange(c.Strict),
		campdb.WithSyncWrites(c.Sync),
	}
	if c.Seed != 0 {
		ops = append(ops, campdb.WithSeed(c.Seed))
	}

	db, err := campdb.Open(c.Db, ops...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", c.Db, cerr))
		}
	}()

	count, err := db.RecordCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "File currently contains %d records.\n\n", count)

	if c.Sites != "" {
		if err := importSites(db, c.Sites, w); err != nil {
			return err
		}
	}

	if err := printCursors(db, w); err != nil {
		return err
	}
	if err := db.ListRecords(w); err != nil {
		return err
	}
	fmt.Fprintln(w)

	count, err = db.RecordCount()
	if err != nil {
		return err
	}
	if count == 0 {
		log.Println("database is empty, nothing to query")
		return nil
	}

	// query a few directly
	for _, index := range []int{count - 1, count / 3, count * 2 / 3} {
		if err := db.PrintRecord(index, w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	random, err := db.GetRandom()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Random: %s\n\n", random)

	fmt.Fprintf(w, "Read index is %d\n", db.CurrentIndex(false))
	fmt.Fprintf(w, "Write index is %d\n", db.CurrentIndex(true))
	fmt.Fprintf(w, "They are moved to index %d...\n\n", count)
	if err := db.MoveCursorsTo(count); err != nil {
		return err
	}
	fmt.Fprintf(w, "Now Read index is %d\n", db.CurrentIndex(false))
	fmt.Fprintf(w, "Now Write index is %d\n\n", db.CurrentIndex(true))

	middle := count / 2
	fmt.Fprintf(w, "Index %d and %d are swapped...\n\n", middle, middle)
	if err := db.Swap(middle, middle); err != nil {
		return err
	}
	if err := db.ListRecords(w); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n\nRange 0 to %d:\n", count)
	sites, err := db.GetRange(0, count)
	if err != nil {
		return err
	}
	for _, site := range sites {
		fmt.Fprintln(w, site)
	}

	return nil
}

func importSites(db *campdb.Store, path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sites, err := model.ReadRecords(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for _, site := range sites {
		fmt.Fprintf(w, "Adding %s\n", site)
		if err := db.WriteNextSequential(site); err != nil {
			return err
		}
	}
	fmt.Fprint(w, "\n\n")
	log.Printf("imported %d campsites from %s", len(sites), path)
	return nil
}

func printCursors(db *campdb.Store, w io.Writer) error {
	count, err := db.RecordCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Read index is %d\n", db.CurrentIndex(false))
	fmt.Fprintf(w, "Write index is %d\n", db.CurrentIndex(true))
	fmt.Fprintf(w, "File now contains %d records.\n\n", count)
	return nil
}
