package index

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/svera/epubsearch/internal/epub"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type chapterRow struct {
	ID       uint `gorm:"primaryKey"`
	BaseCFI  string
	Href     string
	Title    string
	Position int `gorm:"index"`
	Content  string
}

func (chapterRow) TableName() string {
	return "chapters"
}

type postingRow struct {
	Term      string `gorm:"primaryKey"`
	ChapterID uint   `gorm:"primaryKey;index"`
}

func (postingRow) TableName() string {
	return "postings"
}


// SQLiteIndexer keeps chapters and an inverted list of their words in a SQLite database.
// Words are extracted with the same analyzer the bleve backend uses.
type SQLiteIndexer struct {
	db        *gorm.DB
	analyzer  Analyzer
	batchSize int
	log       logrus.FieldLogger
}

func newSQLiteBackend(opts Options) (Index, error) {
	analyzer, err := NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return NewSQLite(opts.SQLiteDSN, analyzer, opts.BatchSize, opts.Logger)
}

// NewSQLite opens the database at dsn and creates the tables if needed
func NewSQLite(dsn string, analyzer Analyzer, batchSize int, log logrus.FieldLogger) (*SQLiteIndexer, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: gets its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&chapterRow{}, &postingRow{}); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &SQLiteIndexer{
		db:        db,
		analyzer:  analyzer,
		batchSize: batchSize,
		log:       log,
	}, nil
}

// Load stores every chapter of the document and the words it contains
func (s *SQLiteIndexer) Load(doc *epub.Document) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, ch := range doc.Chapters {
			c := newChapter(ch)
			row := chapterRow{
				BaseCFI:  c.BaseCFI,
				Href:     c.Href,
				Title:    c.Title,
				Position: c.Position,
				Content:  c.Content,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("error indexing chapter %s: %w", ch.BaseCFI, err)
			}

			terms := s.analyze(c.Content)
			if len(terms) == 0 {
				continue
			}
			postings := make([]postingRow, len(terms))
			for i, term := range terms {
				postings[i] = postingRow{Term: term, ChapterID: row.ID}
			}
			if err := tx.CreateInBatches(postings, s.batchSize).Error; err != nil {
				return fmt.Errorf("error indexing chapter %s: %w", ch.BaseCFI, err)
			}
		}
		s.log.Debugf("Indexed %d chapters", len(doc.Chapters))
		return nil
	})
}

// Search look for chapters containing every word of the passed term, in reading order
func (s *SQLiteIndexer) Search(term string) (Result, error) {
	result := Result{Query: term, Hits: []Hit{}}
	terms := s.analyze(term)
	if len(terms) == 0 {
		return result, nil
	}

	var rows []chapterRow
	err := s.db.Model(&chapterRow{}).
		Select("chapters.*").
		Joins("JOIN postings ON postings.chapter_id = chapters.id").
		Where("postings.term IN ?", terms).
		Group("chapters.id").
		Having("COUNT(DISTINCT postings.term) = ?", len(terms)).
		Order("chapters.position").
		Find(&rows).Error
	if err != nil {
		return result, err
	}

	result.Total = len(rows)
	result.Hits = make([]Hit, len(rows))
	for i, row := range rows {
		result.Hits[i] = Hit{
			BaseCFI:  row.BaseCFI,
			Href:     row.Href,
			Title:    row.Title,
			Position: row.Position,
		}
	}
	return result, nil
}

// Terms returns the distinct words found in the chapters content, sorted
func (s *SQLiteIndexer) Terms() ([]string, error) {
	var terms []string
	err := s.db.Raw("SELECT DISTINCT term FROM postings ORDER BY term").Scan(&terms).Error
	return terms, err
}

// Close closes the database
func (s *SQLiteIndexer) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// analyze returns the distinct terms of text, in order of appearance
func (s *SQLiteIndexer) analyze(text string) []string {
	seen := map[string]bool{}
	var terms []string
	for _, token := range s.analyzer.Analyze([]byte(text)) {
		term := string(token.Term)
		if seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	return terms
}
