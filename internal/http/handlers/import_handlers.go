package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/rogerio-castellano/sweet-shop/pkg/apierror"
	"github.com/shopspring/decimal"
)

type csvRow struct {
	Name     string
	Category string
	Price    string
	Quantity string
}

type ImportSweetsResult struct {
	Imported int                   `json:"imported"`
	Errors   []apierror.FieldError `json:"errors"`
}

var requiredColumns = []string{"name", "category", "price", "quantity"}

func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:     strings.TrimSpace(record[index["name"]]),
			Category: strings.TrimSpace(record[index["category"]]),
			Price:    strings.TrimSpace(record[index["price"]]),
			Quantity: strings.TrimSpace(record[index["quantity"]]),
		})
	}
	return rows, nil
}

func (row csvRow) toRequest() (SweetRequest, error) {
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return SweetRequest{}, errors.New("invalid price")
	}
	qty, err := strconv.Atoi(row.Quantity)
	if err != nil {
		return SweetRequest{}, errors.New("invalid quantity")
	}
	req := SweetRequest{Name: row.Name, Category: row.Category, Price: price, Quantity: qty}
	if errs := validateSweet(req); len(errs) > 0 {
		return SweetRequest{}, errors.New(strings.ToLower(errs[0].Description))
	}
	return req, nil
}

// ImportSweetsHandler godoc
// @Summary Import sweets via CSV
// @Description Columns: name, category, price, quantity. Existing names are skipped unless mode=update.
// @Tags sweets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportSweetsResult
// @Failure 400 {object} apierror.Error
// @Failure 403 {object} apierror.Error
// @Router /api/sweets/import [post]
func ImportSweetsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip"
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		apierror.BadRequest("missing file").Write(w)
		return
	}
	defer file.Close()

	rows, err := parseCSV(file)
	if err != nil {
		apierror.BadRequest(err.Error()).Write(w)
		return
	}

	existing, err := sweetRepo.GetAll()
	if err != nil {
		apierror.Internal("could not fetch sweets").Write(w)
		return
	}
	byName := make(map[string]models.Sweet, len(existing))
	for _, s := range existing {
		byName[s.Name] = s
	}

	result := ImportSweetsResult{Errors: []apierror.FieldError{}}
	rowError := func(rowNum int, format string, args ...any) {
		result.Errors = append(result.Errors, apierror.FieldError{
			Field:       fmt.Sprintf("row %d", rowNum),
			Description: fmt.Sprintf(format, args...),
		})
	}

	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		req, err := row.toRequest()
		if err != nil {
			rowError(rowNum, "%v", err)
			continue
		}

		sweet := models.Sweet{Name: req.Name, Category: req.Category, Price: req.Price, Quantity: req.Quantity}
		if current, ok := byName[req.Name]; ok {
			if mode == "skip" {
				rowError(rowNum, "sweet '%s' already exists", req.Name)
				continue
			}
			sweet.ID = current.ID
			if _, err := sweetRepo.Update(sweet); err != nil {
				rowError(rowNum, "failed to update '%s'", req.Name)
				continue
			}
			result.Imported++
			continue
		}

		created, err := sweetRepo.Create(sweet)
		if err != nil {
			rowError(rowNum, "%v", err)
			continue
		}
		byName[created.Name] = created
		result.Imported++
	}

	if result.Imported > 0 {
		invalidateList(r)
	}
	log.Printf("📦 CSV import (%s): %d imported, %d rejected", mode, result.Imported, len(result.Errors))
	writeJSON(w, http.StatusOK, result)
}
