package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/techstacks/newsroom/model"
	"github.com/techstacks/newsroom/utils"
)

// Post processing states tracked by the index.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// PostDB is the sqlite index of discovered posts. It answers "have we seen
// this post or URL before" and tracks pipeline outcomes; the post documents
// themselves live as JSON files beside it.
type PostDB struct {
	Filename string
	DB       *sql.DB

	upsertPostStmt string
	setStatusStmt  string
}

func OpenPostDB(path string) (*PostDB, error) {
	existing, err := utils.PathExists(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	pdb := &PostDB{Filename: path, DB: db}
	if !existing {
		if err := pdb.initTables(); err != nil {
			db.Close()
			return nil, err
		}
	}
	pdb.initSQLStatements()
	return pdb, nil
}

func (pdb *PostDB) Close() {
	pdb.DB.Close()
}

// UpsertPosts records newly discovered posts and reports how many were not
// already in the index. Known IDs keep their status and stats.
func (pdb *PostDB) UpsertPosts(posts []model.Post) (added int, err error) {
	tx, err := pdb.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, p := range posts {
		res, err := tx.Exec(pdb.upsertPostStmt,
			p.ID, p.Title, p.Slug, utils.TrimmedURL(p.URL), p.Subreddit,
			p.Points, p.Comments, p.CommentsURL, StatusPending, now)
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			added++
		}
	}
	return added, tx.Commit()
}

// PendingPosts returns posts that have not completed or failed yet, highest
// points first.
func (pdb *PostDB) PendingPosts() (posts []model.Post, err error) {
	stmt := `
		SELECT id, title, slug, url, subreddit, points, comments, comments_url
		FROM post
		WHERE status = ?
		ORDER BY points DESC`

	rows, err := pdb.DB.Query(stmt, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.URL, &p.Subreddit,
			&p.Points, &p.Comments, &p.CommentsURL); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost looks a post up by ID.
func (pdb *PostDB) GetPost(id string) (*model.Post, error) {
	stmt := `
		SELECT id, title, slug, url, subreddit, points, comments, comments_url
		FROM post
		WHERE id = ?`

	var p model.Post
	err := pdb.DB.QueryRow(stmt, id).Scan(&p.ID, &p.Title, &p.Slug, &p.URL,
		&p.Subreddit, &p.Points, &p.Comments, &p.CommentsURL)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Seen reports whether the post ID or its URL is already indexed. URL
// matching ignores trailing slashes so HN and Reddit relists dedup cleanly.
func (pdb *PostDB) Seen(id, url string) (bool, error) {
	stmt := `SELECT COUNT(*) FROM post WHERE id = ? OR (url != '' AND url = ?)`

	var count int
	if err := pdb.DB.QueryRow(stmt, id, utils.TrimmedURL(url)).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkCompleted moves a post to the completed state.
func (pdb *PostDB) MarkCompleted(id string) error {
	_, err := pdb.DB.Exec(pdb.setStatusStmt, StatusCompleted, "", time.Now().Unix(), id)
	return err
}

// MarkFailed moves a post to the failed state, keeping the error message.
func (pdb *PostDB) MarkFailed(id, errMsg string) error {
	_, err := pdb.DB.Exec(pdb.setStatusStmt, StatusFailed, errMsg, time.Now().Unix(), id)
	return err
}

// StatusCounts returns how many posts are in each state.
func (pdb *PostDB) StatusCounts() (map[string]int, error) {
	rows, err := pdb.DB.Query(`SELECT status, COUNT(*) FROM post GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (pdb *PostDB) initTables() error {
	schema := `
CREATE TABLE post (
	id TEXT NOT NULL PRIMARY KEY,
	title TEXT,
	slug TEXT,
	url TEXT,
	subreddit TEXT,
	points INTEGER,
	comments INTEGER,
	comments_url TEXT,
	status TEXT NOT NULL,
	error TEXT,
	discovered INTEGER,
	processed INTEGER
);

CREATE INDEX post_url ON post(url);
CREATE INDEX post_status ON post(status);
`
	_, err := pdb.DB.Exec(schema)
	return err
}

func (pdb *PostDB) initSQLStatements() {
	pdb.upsertPostStmt = `
		INSERT INTO post
			(id, title, slug, url, subreddit, points, comments, comments_url, status, discovered)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`

	pdb.setStatusStmt = `
		UPDATE post SET status = ?, error = ?, processed = ? WHERE id = ?`
}
