package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/StroziSolci/Projeto-Fifa/model"
)

const (
	colName               = "Name"
	colAge                = "Age"
	colPhoto              = "Photo"
	colNationality        = "Nationality"
	colFlag               = "Flag"
	colOverall            = "Overall"
	colPotential          = "Potential"
	colClub               = "Club"
	colClubLogo           = "Club Logo"
	colValue              = "Value(£)"
	colWage               = "Wage(£)"
	colPreferredFoot      = "Preferred Foot"
	colPosition           = "Position"
	colJoined             = "Joined"
	colLoanedFrom         = "Loaned From"
	colContractValidUntil = "Contract Valid Until"
	colHeight             = "Height(cm.)"
	colWeight             = "Weight(lbs.)"
	colReleaseClause      = "Release Clause(£)"
	colKitNumber          = "Kit Number"
)

var requiredColumns = []string{
	colName,
	colAge,
	colOverall,
	colClub,
	colPosition,
	colValue,
	colWage,
	colReleaseClause,
	colContractValidUntil,
	colHeight,
	colWeight,
}

var (
	ErrMissingColumn error = errors.New("missing required column")
	ErrEmptyDataset  error = errors.New("dataset has no header row")
)

type fifaCSVReader struct {
	r       *csv.Reader
	columns map[string]int
}

func newFifaCSVReader(r io.Reader) (*fifaCSVReader, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	// The first column is the row index and usually has no name.
	columns := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			continue
		}
		columns[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	for _, c := range requiredColumns {
		if _, found := columns[c]; !found {
			return nil, fmt.Errorf("%w: '%s'", ErrMissingColumn, c)
		}
	}

	return &fifaCSVReader{r: reader, columns: columns}, nil
}

func (f *fifaCSVReader) readPlayer() (*model.Player, error) {
	record, err := f.r.Read()
	if err != nil {
		return nil, err
	}
	line, _ := f.r.FieldPos(0)

	row := &csvRow{record: record, columns: f.columns, line: line}
	position := row.str(colPosition)
	p := &model.Player{
		ID:            row.index(),
		Name:          row.str(colName),
		Photo:         row.str(colPhoto),
		Nationality:   row.str(colNationality),
		Flag:          row.str(colFlag),
		Club:          row.str(colClub),
		ClubLogo:      row.str(colClubLogo),
		PreferredFoot: row.str(colPreferredFoot),
		Position:      model.ParsePosition(position),
		PositionText:  position,
		Joined:        row.str(colJoined),
		LoanedFrom:    row.str(colLoanedFrom),
	}

	p.Age = row.int(colAge)
	p.Overall = row.int(colOverall)
	p.Potential = row.int(colPotential)
	p.Value = row.float(colValue)
	p.Wage = row.float(colWage)
	p.ReleaseClause = row.float(colReleaseClause)
	p.ContractValidUntil = row.int(colContractValidUntil)
	p.Height = row.float(colHeight)
	p.Weight = row.float(colWeight)
	p.KitNumber = row.int(colKitNumber)

	if row.err != nil {
		return nil, row.err
	}
	return p, nil
}

func parseCSV(r io.Reader) ([]model.Player, error) {
	reader, err := newFifaCSVReader(r)
	if err != nil {
		return nil, err
	}

	var players []model.Player
	for {
		p, err := reader.readPlayer()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		players = append(players, *p)
	}
	return players, nil
}

// csvRow reads typed values from a record. The first conversion error is
// kept in err and every later read is a no-op.
type csvRow struct {
	record  []string
	columns map[string]int
	line    int
	err     error
}

func (r *csvRow) index() string {
	if len(r.record) == 0 {
		return ""
	}
	return strings.TrimSpace(r.record[0])
}

func (r *csvRow) str(col string) string {
	i, found := r.columns[col]
	if !found || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r *csvRow) float(col string) float64 {
	if r.err != nil {
		return 0
	}

	s := r.str(col)
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.EqualFold(s, "nan") {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		r.err = fmt.Errorf("line %d: invalid value for '%s': '%s'", r.line, col, s)
		return 0
	}
	return v
}

// int accepts values like "2026.0" because pandas writes integer columns with
// missing values as floats.
func (r *csvRow) int(col string) int {
	return int(math.Round(r.float(col)))
}
