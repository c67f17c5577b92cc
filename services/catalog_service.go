package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/elidrum/Nutrease/models"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyCatalog = errors.New("catalog: no usable rows in dataset")
	ErrUnitMismatch = errors.New("catalog: no deterministic unit conversion")
)

// Catalog holds the food dataset loaded once at startup. It is read-only
// after construction and safe to share across goroutines.
type Catalog struct {
	records    []models.FoodRecord
	normalized []string // normalized name per record, same index
}

// Match pairs a catalog record with its lookup score in [0,1].
type Match struct {
	Record models.FoodRecord `json:"record"`
	Score  float64           `json:"score"`
}

// LoadCatalog reads a delimited dataset with the columns
// food_name,unit,grams,lactose,sorbitol,gluten (header row required,
// case-insensitive). Malformed rows are skipped with a warning; an empty
// result is an error because the resolver would be useless.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open dataset: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// ReadCatalog is the io.Reader form of LoadCatalog, used by tests.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := cr.Read()
	if err != nil {
		return nil, ErrEmptyCatalog
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"food_name", "unit"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog: dataset missing %q column", required)
		}
	}

	cat := &Catalog{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("catalog: skipping line %d: %v", line, err)
			continue
		}
		rec, err := parseRow(row, col)
		if err != nil {
			log.Printf("catalog: skipping line %d: %v", line, err)
			continue
		}
		rec.ID = uint(len(cat.records) + 1)
		cat.records = append(cat.records, rec)
		cat.normalized = append(cat.normalized, normalizeName(rec.Name))
	}

	if len(cat.records) == 0 {
		return nil, ErrEmptyCatalog
	}
	return cat, nil
}

func parseRow(row []string, col map[string]int) (models.FoodRecord, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := field("food_name")
	if name == "" {
		return models.FoodRecord{}, errors.New("empty food_name")
	}
	unit, err := models.ParseUnit(field("unit"))
	if err != nil {
		return models.FoodRecord{}, err
	}

	num := func(name string) (float64, error) {
		s := field(name)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("bad %s value %q", name, s)
		}
		if v < 0 {
			return 0, fmt.Errorf("negative %s value %q", name, s)
		}
		return v, nil
	}

	rec := models.FoodRecord{Name: name, Unit: unit}
	if rec.GramsPerUnit, err = num("grams"); err != nil {
		return models.FoodRecord{}, err
	}
	if rec.LactosePerUnit, err = num("lactose"); err != nil {
		return models.FoodRecord{}, err
	}
	if rec.SorbitolPerUnit, err = num("sorbitol"); err != nil {
		return models.FoodRecord{}, err
	}
	if rec.GlutenPerUnit, err = num("gluten"); err != nil {
		return models.FoodRecord{}, err
	}
	return rec, nil
}

func (c *Catalog) Len() int { return len(c.records) }

// Get returns the record for a previously resolved id.
func (c *Catalog) Get(id uint) (models.FoodRecord, bool) {
	if id == 0 || int(id) > len(c.records) {
		return models.FoodRecord{}, false
	}
	return c.records[id-1], true
}

// Lookup scores every record against query and returns up to limit matches,
// best first. Ties break on shorter name, then lexical order. The scan is a
// single pass over the catalog; no backtracking.
func (c *Catalog) Lookup(query string, limit int) []Match {
	q := normalizeName(query)
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	matches := make([]Match, 0, len(c.records))
	for i, rec := range c.records {
		s := similarity(q, c.normalized[i])
		if s <= 0 {
			continue
		}
		matches = append(matches, Match{Record: rec, Score: s})
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Record.Name) != len(b.Record.Name) {
			return len(a.Record.Name) < len(b.Record.Name)
		}
		return a.Record.Name < b.Record.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Convert expresses quantity given in from in units of to, for the given
// record. Fixed factors cover same-dimension conversions; crossing into or
// out of the record's native unit uses its grams-per-unit figure when known.
func (c *Catalog) Convert(quantity float64, from, to models.Unit, rec models.FoodRecord) (float64, error) {
	native, err := toNative(quantity, from, rec)
	if err != nil {
		return 0, err
	}
	return fromNative(native, to, rec)
}

func toNative(q float64, u models.Unit, rec models.FoodRecord) (float64, error) {
	if u == rec.Unit {
		return q, nil
	}
	if f, err := fixedRatio(u, rec.Unit); err == nil {
		return q * f, nil
	}
	// Bridge mass -> native through the record's known unit mass.
	if u.Dimension() == models.DimMass && rec.GramsPerUnit > 0 {
		grams := q * massFactor(u)
		return grams / rec.GramsPerUnit, nil
	}
	return 0, ErrUnitMismatch
}

func fromNative(q float64, u models.Unit, rec models.FoodRecord) (float64, error) {
	if u == rec.Unit {
		return q, nil
	}
	if f, err := fixedRatio(rec.Unit, u); err == nil {
		return q * f, nil
	}
	if u.Dimension() == models.DimMass && rec.GramsPerUnit > 0 {
		grams := q * rec.GramsPerUnit
		return grams / massFactor(u), nil
	}
	return 0, ErrUnitMismatch
}

// fixedRatio returns how many to-units one from-unit equals, for units of the
// same dimension with known sizes. Count units have no sizes, so two distinct
// count units never interconvert.
func fixedRatio(from, to models.Unit) (float64, error) {
	if from.Dimension() != to.Dimension() {
		return 0, ErrUnitMismatch
	}
	ff, ok1 := unitSize(from)
	ft, ok2 := unitSize(to)
	if !ok1 || !ok2 {
		return 0, ErrUnitMismatch
	}
	return ff / ft, nil
}

func unitSize(u models.Unit) (float64, bool) {
	switch u {
	case models.UnitGram:
		return 1, true
	case models.UnitKilogram:
		return 1000, true
	case models.UnitMilliliter:
		return 1, true
	case models.UnitLiter:
		return 1000, true
	case models.UnitGlass:
		return 200, true
	case models.UnitCup:
		return 240, true
	case models.UnitSpoon:
		return 10, true
	}
	return 0, false
}

func massFactor(u models.Unit) float64 {
	if u == models.UnitKilogram {
		return 1000
	}
	return 1
}

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeName lowercases, strips diacritics and collapses whitespace so
// "Caffè  Latte" and "caffe latte" compare equal.
func normalizeName(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// similarity scores two normalized strings in [0,1]. Exact match is 1;
// otherwise an edit-distance ratio, with a substring floor so that a query
// contained in a longer name still ranks.
func similarity(query, name string) float64 {
	if query == name {
		return 1
	}
	// the edit distance counts runes, so length the ratio in runes too
	qlen := utf8.RuneCountInString(query)
	nlen := utf8.RuneCountInString(name)
	longest := qlen
	if nlen > longest {
		longest = nlen
	}
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(query, name)
	score := 1 - float64(d)/float64(longest)
	if strings.Contains(name, query) && qlen >= 3 {
		// substring hit: never score below the share of the name it covers
		if sub := float64(qlen) / float64(nlen); sub > score {
			score = sub
		}
	}
	if score < 0 {
		return 0
	}
	return score
}
