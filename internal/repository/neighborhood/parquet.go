package neighborhood

import (
	"fmt"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/hoodmatch/internal/domain"
	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
)

// parquetRow is one neighborhood in a Parquet dataset. Column names match the YAML keys.
// A missing rating column reads as 0 and fails range validation.
type parquetRow struct {
	ID             string   `parquet:"id"`
	Name           string   `parquet:"name"`
	City           string   `parquet:"city"`
	State          string   `parquet:"state"`
	Safety         int32    `parquet:"safety"`
	Affordability  int32    `parquet:"affordability"`
	Walkability    int32    `parquet:"walkability"`
	SchoolQuality  int32    `parquet:"schoolQuality"`
	ParksTransport int32    `parquet:"parksTransport"`
	Description    string   `parquet:"description"`
	Highlights     []string `parquet:"highlights,list"`
}

func (p *parquetRow) toRecord() record {
	rating := func(v int32) *int {
		i := int(v)
		return &i
	}
	return record{
		ID:             p.ID,
		Name:           p.Name,
		City:           p.City,
		State:          p.State,
		Safety:         rating(p.Safety),
		Affordability:  rating(p.Affordability),
		Walkability:    rating(p.Walkability),
		SchoolQuality:  rating(p.SchoolQuality),
		ParksTransport: rating(p.ParksTransport),
		Description:    p.Description,
		Highlights:     p.Highlights,
	}
}

// LoadParquet parses a dataset from a Parquet file, one row per neighborhood.
func LoadParquet(path string) (*Repo, error) {
	rows, err := parquet.ReadFile[parquetRow](filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w: read parquet: %w", path, domain.ErrInvalidDataset, err)
	}

	records := make([]record, len(rows))
	for i := range rows {
		records[i] = rows[i].toRecord()
	}

	r, err := build(records)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return r, nil
}

// WriteParquet exports neighborhoods from r to a Parquet file readable by LoadParquet.
func WriteParquet(path string, r *Repo) error {
	rows := make([]parquetRow, len(r.items))
	for i := range r.items {
		n := &r.items[i]
		rows[i] = parquetRow{
			ID:             n.ID(),
			Name:           n.Name(),
			City:           n.City(),
			State:          n.State(),
			Safety:         int32(n.Score(attribute.Safety)),
			Affordability:  int32(n.Score(attribute.Affordability)),
			Walkability:    int32(n.Score(attribute.Walkability)),
			SchoolQuality:  int32(n.Score(attribute.SchoolQuality)),
			ParksTransport: int32(n.Score(attribute.ParksTransport)),
			Description:    n.Description(),
			Highlights:     n.Highlights(),
		}
	}
	if err := parquet.WriteFile(filepath.Clean(path), rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}
