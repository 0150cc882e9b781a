package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// APKGGenerator creates Anki package files (.apkg) without media
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []Card
	now      func() time.Time
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName: deckName,
		deckID:   now,
		modelID:  now + 1,
		now:      time.Now,
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG creates an .apkg file at outputPath
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "vocabquiz_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// The package has no media but Anki still expects the mapping file
	if err := os.WriteFile(filepath.Join(tempDir, "media"), []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range schema {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	if err := g.insertCollection(tx); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotesAndCards(tx); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return tx.Commit()
}

var schema = []string{
	`CREATE TABLE col (
		id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
		scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
		usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
		models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
		tags text NOT NULL
	)`,
	`CREATE TABLE notes (
		id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
		mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
		flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
		flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE cards (
		id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
		ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
		type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
		ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
		lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
		odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE revlog (
		id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
		ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
		factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
	)`,
	`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

func (g *APKGGenerator) insertCollection(tx *sql.Tx) error {
	now := g.now().Unix()

	deck := func(id int64, name, desc string) map[string]interface{} {
		return map[string]interface{}{
			"id":        id,
			"name":      name,
			"mod":       now,
			"desc":      desc,
			"collapsed": false,
			"dyn":       0,
			"conf":      1,
			"usn":       0,
			"newToday":  []int{0, 0},
			"revToday":  []int{0, 0},
			"lrnToday":  []int{0, 0},
			"timeToday": []int{0, 0},
			"extendNew": 10,
			"extendRev": 50,
		}
	}
	decks := map[string]interface{}{
		"1":                         deck(1, "Default", ""),
		fmt.Sprintf("%d", g.deckID): deck(g.deckID, g.deckName, "Words from a vocabquiz session"),
	}
	models := map[string]interface{}{
		fmt.Sprintf("%d", g.modelID): g.noteType(now),
	}
	conf := map[string]interface{}{
		"nextPos":     1,
		"estTimes":    true,
		"activeDecks": []int64{1},
		"sortType":    "noteFld",
		"addToCur":    true,
		"curDeck":     1,
		"dueCounts":   true,
		"schedVer":    1,
		"curModel":    fmt.Sprintf("%d", g.modelID),
	}
	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
			},
			"lapse": map[string]interface{}{
				"delays":     []int{10},
				"minInt":     1,
				"leechFails": 8,
			},
			"rev": map[string]interface{}{
				"perDay": 100,
				"ease4":  1.3,
				"maxIvl": 36500,
				"ivlFct": 1,
			},
			"maxTaken": 60,
			"mod":      now,
		},
	}

	encoded := make([]string, 0, 4)
	for _, v := range []interface{}{conf, models, decks, dconf} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		encoded = append(encoded, string(data))
	}

	_, err := tx.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1, now, now*1000, now*1000, 11, 0, 0, 0,
		encoded[0], encoded[1], encoded[2], encoded[3], "{}")
	return err
}

func (g *APKGGenerator) noteType(now int64) map[string]interface{} {
	field := func(name string, ord int) map[string]interface{} {
		return map[string]interface{}{"name": name, "ord": ord, "font": "Arial", "size": 20, "media": []string{}}
	}
	return map[string]interface{}{
		"id":    g.modelID,
		"name":  "vocabquiz result",
		"type":  0,
		"mod":   now,
		"usn":   -1,
		"sortf": 0,
		"did":   g.deckID,
		"req":   [][]interface{}{{0, "all", []int{0}}},
		"tags":  []string{},
		"flds":  []map[string]interface{}{field("Word", 0), field("Reference", 1), field("Answer", 2)},
		"tmpls": []map[string]interface{}{{
			"name": "Recall",
			"ord":  0,
			"qfmt": `<div class="word">{{Word}}</div>`,
			"afmt": `{{FrontSide}}<hr id="answer"><div class="reference">{{Reference}}</div>` +
				`{{#Answer}}<div class="answer">{{Answer}}</div>{{/Answer}}`,
			"did": nil,
		}},
		"css": `.card { font-family: Arial, sans-serif; font-size: 20px; text-align: center; }
.word { font-size: 28px; font-weight: bold; }
.reference { font-size: 32px; color: #c0392b; }
.answer { font-size: 16px; color: #7f8c8d; font-style: italic; }`,
	}
}

func (g *APKGGenerator) insertNotesAndCards(tx *sql.Tx) error {
	now := g.now()
	base := now.UnixMilli()

	for i, card := range g.cards {
		noteID := base + int64(i*2)
		cardID := noteID + 1

		answer := ""
		if card.Answer != "" {
			answer = "Your answer: " + html.EscapeString(card.Answer)
		}
		fields := strings.Join([]string{
			html.EscapeString(card.Word),
			html.EscapeString(card.Reference),
			answer,
		}, "\x1f")

		_, err := tx.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID,
			fmt.Sprintf("vq_%d_%s", now.Unix(), card.Word),
			g.modelID,
			now.Unix(),
			-1,
			" "+card.Tags()+" ",
			fields,
			card.Word,
			fieldChecksum(card.Word),
			0,
			"",
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		// new card: type 0, queue 0, due is the position in the new queue
		_, err = tx.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cardID, noteID, g.deckID, 0, now.Unix(), -1,
			0, 0, i+1, 0, 0, 0, 0, 0, 0, 0, 0, "")
		if err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
	}
	return nil
}

// fieldChecksum mirrors Anki's csum column: the first 8 hex digits of the
// sha1 of the sort field.
func fieldChecksum(s string) int64 {
	sum := sha1.Sum([]byte(s))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	for _, name := range []string{"collection.anki2", "media"} {
		if err := addToZip(archive, filepath.Join(tempDir, name), name); err != nil {
			archive.Close()
			return err
		}
	}
	return archive.Close()
}

func addToZip(archive *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer, err := archive.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, file)
	return err
}
