package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/filmdex/filmdex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ filmdex.ReleaseService = (*ReleaseService)(nil)

// releaseColumns is the column list shared by every release query.
const releaseColumns = `id, site_id, source_url, title, year, language, quality, format,
	synopsis, screenshots, sections, tags, stats, content_hash, fetched_at`

// ReleaseService implements filmdex.ReleaseService using SQLite.
type ReleaseService struct {
	db *DB
}

// NewReleaseService creates a new ReleaseService.
func NewReleaseService(db *DB) *ReleaseService {
	return &ReleaseService{db: db}
}

// CreateRelease creates a new release.
func (s *ReleaseService) CreateRelease(ctx context.Context, release *filmdex.Release) error {
	if err := release.Validate(); err != nil {
		return err
	}

	if release.ID == "" {
		release.ID = uuid.New().String()
	}
	if release.FetchedAt.IsZero() {
		release.FetchedAt = time.Now().UTC()
	}

	cols, err := encodeReleaseColumns(release)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO releases (`+releaseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, release.ID, release.SiteID, release.SourceURL, release.Title, release.Year,
		release.Language, release.Quality, release.Format, release.Synopsis,
		cols.screenshots, cols.sections, cols.tags, cols.stats,
		release.ContentHash, release.FetchedAt.Format(time.RFC3339))

	return err
}

// UpsertRelease creates the release or, when one with the same source
// URL already exists, replaces its extracted content in place. The
// stored row's ID is preserved across upserts.
func (s *ReleaseService) UpsertRelease(ctx context.Context, release *filmdex.Release) error {
	if err := release.Validate(); err != nil {
		return err
	}

	if release.ID == "" {
		release.ID = uuid.New().String()
	}
	if release.FetchedAt.IsZero() {
		release.FetchedAt = time.Now().UTC()
	}

	cols, err := encodeReleaseColumns(release)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO releases (`+releaseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_url) DO UPDATE SET
			site_id = excluded.site_id,
			title = excluded.title,
			year = excluded.year,
			language = excluded.language,
			quality = excluded.quality,
			format = excluded.format,
			synopsis = excluded.synopsis,
			screenshots = excluded.screenshots,
			sections = excluded.sections,
			tags = excluded.tags,
			stats = excluded.stats,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, release.ID, release.SiteID, release.SourceURL, release.Title, release.Year,
		release.Language, release.Quality, release.Format, release.Synopsis,
		cols.screenshots, cols.sections, cols.tags, cols.stats,
		release.ContentHash, release.FetchedAt.Format(time.RFC3339))

	return err
}

// FindReleaseByID retrieves a release by ID.
func (s *ReleaseService) FindReleaseByID(ctx context.Context, id string) (*filmdex.Release, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+releaseColumns+` FROM releases WHERE id = ?
	`, id)

	release, err := scanRelease(row.Scan)
	if err == sql.ErrNoRows {
		return nil, filmdex.Errorf(filmdex.ENOTFOUND, "release not found")
	}
	if err != nil {
		return nil, err
	}
	return release, nil
}

// FindReleases retrieves releases matching the filter.
func (s *ReleaseService) FindReleases(ctx context.Context, filter filmdex.ReleaseFilter) ([]*filmdex.Release, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + releaseColumns + " FROM releases WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Title != nil {
		query.WriteString(" AND title LIKE ?")
		args = append(args, "%"+*filter.Title+"%")
	}

	switch filter.SortBy {
	case filmdex.ReleasesByTitle:
		query.WriteString(" ORDER BY title ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var releases []*filmdex.Release
	for rows.Next() {
		release, err := scanRelease(rows.Scan)
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}

	return releases, rows.Err()
}

// DeleteRelease permanently removes a release.
func (s *ReleaseService) DeleteRelease(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM releases WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return filmdex.Errorf(filmdex.ENOTFOUND, "release not found")
	}

	return nil
}

// DeleteReleasesBySite removes all releases for a site.
func (s *ReleaseService) DeleteReleasesBySite(ctx context.Context, siteID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM releases WHERE site_id = ?", siteID)
	return err
}

// jsonColumns holds the JSON-encoded column values of one release row.
type jsonColumns struct {
	screenshots string
	sections    string
	tags        string
	stats       string
}

func encodeReleaseColumns(release *filmdex.Release) (jsonColumns, error) {
	var cols jsonColumns
	var err error

	if cols.screenshots, err = marshalJSON(release.Screenshots, "screenshots"); err != nil {
		return cols, err
	}
	if cols.sections, err = marshalJSON(release.Sections, "sections"); err != nil {
		return cols, err
	}
	if cols.tags, err = marshalJSON(release.Tags, "tags"); err != nil {
		return cols, err
	}
	if cols.stats, err = marshalJSON(release.Stats, "stats"); err != nil {
		return cols, err
	}
	return cols, nil
}

// scanRelease scans one releases row using the given scan function.
func scanRelease(scan func(...any) error) (*filmdex.Release, error) {
	var release filmdex.Release
	var cols jsonColumns
	var fetchedAt string

	if err := scan(&release.ID, &release.SiteID, &release.SourceURL, &release.Title,
		&release.Year, &release.Language, &release.Quality, &release.Format,
		&release.Synopsis, &cols.screenshots, &cols.sections, &cols.tags, &cols.stats,
		&release.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	if err := unmarshalJSON(cols.screenshots, &release.Screenshots, "screenshots"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.sections, &release.Sections, "sections"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.tags, &release.Tags, "tags"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cols.stats, &release.Stats, "stats"); err != nil {
		return nil, err
	}

	var err error
	if release.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &release, nil
}
