package gblogo

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/gblogo/logo"
	_ "github.com/mattn/go-sqlite3"
)

// LogoDB catalogues the logos found in cartridge images.
type LogoDB struct {
	db *sql.DB
}

// LogoEntry is a distinct logo along with how many cartridge images carry it.
type LogoEntry struct {
	CRC  string
	Logo logo.Packed
	ROMs int
}

// NewLogoDB opens or creates the catalogue stored in file.
func NewLogoDB(file string) (*LogoDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Writes come from several workers, serialize them
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS logo (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, packed BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS rom (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, name TEXT NOT NULL, title TEXT NOT NULL, logo_id INTEGER NOT NULL, FOREIGN KEY(logo_id) REFERENCES logo(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &LogoDB{
		db: db,
	}, nil
}

// Close closes the catalogue
func (db *LogoDB) Close() error {
	return db.db.Close()
}

func (db *LogoDB) addLogo(p logo.Packed) (int64, error) {
	crc := crcBytes(p[:])

	if _, err := db.db.Exec("INSERT OR IGNORE INTO logo (crc, packed) VALUES (?, ?)", crc, p[:]); err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM logo WHERE crc = ?", crc).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// AddROM records the logo carried by rom under name. A cartridge image seen
// before, by CRC, is updated rather than duplicated.
func (db *LogoDB) AddROM(name string, rom *ROM) error {
	id, err := db.addLogo(rom.Logo())
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO rom (crc, name, title, logo_id) VALUES (?, ?, ?, ?)", crcBytes(rom.Bytes()), name, rom.Title(), id); err != nil {
		return err
	}
	return nil
}

// FindLogoByCRC returns the logo with the given CRC, or nil if there isn't
// one.
func (db *LogoDB) FindLogoByCRC(crc string) (*logo.Packed, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT packed FROM logo WHERE crc = ?", crc).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		p := new(logo.Packed)
		if err := p.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, err
	}
}

// Logos returns every distinct logo ordered by CRC.
func (db *LogoDB) Logos() ([]LogoEntry, error) {
	rows, err := db.db.Query("SELECT l.crc, l.packed, COUNT(r.id) FROM logo AS l LEFT JOIN rom AS r ON r.logo_id = l.id GROUP BY l.id ORDER BY l.crc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LogoEntry
	for rows.Next() {
		var e LogoEntry
		var b []byte
		if err := rows.Scan(&e.CRC, &b, &e.ROMs); err != nil {
			return nil, err
		}
		if err := e.Logo.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
