package integration

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"healthsites/internal/config"
	"healthsites/internal/models"
	"healthsites/internal/pipeline"
)

var fixturePath = filepath.Join("..", "fixtures", "healthsites.csv")

func runPipeline(t *testing.T, input string) (*models.Document, *models.Sample) {
	t.Helper()

	out := t.TempDir()

	cfg := config.Default()
	cfg.Normalizer.Input.Path = input
	cfg.Normalizer.Output.Path = filepath.Join(out, config.DefaultOutputName)
	cfg.Normalizer.Output.SamplePath = filepath.Join(out, config.DefaultSampleName)
	cfg.Normalizer.Output.SampleSize = 4

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Invalid test config: %v", err)
	}

	report, err := pipeline.New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var doc models.Document
	readJSON(t, report.Full.Path, &doc)

	var sample models.Sample
	readJSON(t, report.Sample.Path, &sample)

	return &doc, &sample
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
}

func TestNormalizer_Fixture(t *testing.T) {
	doc, sample := runPipeline(t, fixturePath)

	if len(doc.Facilities) != 7 {
		t.Fatalf("Expected 7 facilities (one row without type), got %d", len(doc.Facilities))
	}

	wantSummary := models.Summary{
		TotalFacilities: 7,
		FacilityTypes:   map[string]int{"pharmacy": 3, "hospital": 2, "clinic": 2},
		ByLocation:      map[string]int{"Lilongwe": 3, "Blantyre": 1, "Zomba": 1, "Mzuzu": 1},
		DataQuality:     models.DataQuality{WithCoordinates: 6, WithName: 5, WithOperator: 3},
	}

	if !reflect.DeepEqual(doc.Summary, wantSummary) {
		t.Errorf("Summary = %+v\nwant %+v", doc.Summary, wantSummary)
	}

	if !reflect.DeepEqual(sample.Summary, doc.Summary) {
		t.Error("Sample summary should equal the full summary")
	}

	if len(sample.SampleFacilities) != 4 || sample.SampleFacilities[3].ID != doc.Facilities[3].ID {
		t.Errorf("Sample should hold the first 4 facilities, got %d", len(sample.SampleFacilities))
	}

	first := doc.Facilities[0]
	if first.Name != "Unnamed pharmacy" || first.Metadata.OSMID != "1001" {
		t.Errorf("Unexpected first facility: %+v", first)
	}

	kch := doc.Facilities[1]
	if kch.Details == nil || *kch.Details.StaffDoctors != 45 || len(kch.Details.Specialities) != 3 {
		t.Errorf("Unexpected details: %+v", kch.Details)
	}

	// "NaN" name and completeness read as missing
	nan := doc.Facilities[4]
	if nan.Name != "Unnamed clinic" || nan.Metadata.Completeness != 0 {
		t.Errorf("Unexpected facility for NaN row: %+v", nan)
	}
}

func TestNormalizer_XLSXMatchesCSV(t *testing.T) {
	f, err := os.Open(fixturePath)
	if err != nil {
		t.Fatalf("Failed to open fixture: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	book := excelize.NewFile()
	defer book.Close()

	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)

		if err := book.SetSheetRow("Sheet1", cell, &rec); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	xlsxPath := filepath.Join(t.TempDir(), "healthsites.xlsx")
	if err := book.SaveAs(xlsxPath); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	csvDoc, _ := runPipeline(t, fixturePath)
	xlsxDoc, _ := runPipeline(t, xlsxPath)

	if !reflect.DeepEqual(csvDoc, xlsxDoc) {
		t.Error("XLSX input should normalize to the same document as CSV")
	}
}
