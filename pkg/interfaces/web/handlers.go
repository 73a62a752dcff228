package web

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/services"
)

type indexPage struct {
	Today      string
	Accept     string
	MaxUpload  string
	PreviewMax int
}

type reportPage struct {
	ID                  string
	SourceName          string
	ReferenceDate       string
	Rows                int
	InvalidReceiptDates int
	Columns             []string
	Preview             [][]string
	DownloadURL         string
	DownloadName        string
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

// handleIndex renders the upload form
func (s *Server) handleIndex(c *fiber.Ctx) error {
	return s.render(c, "index.html", indexPage{
		Today:      s.today().Time().Format("2006-01-02"),
		Accept:     strings.Join(s.service.SupportedExtensions(), ","),
		MaxUpload:  fmt.Sprintf("%d MB", MaxUploadBytes>>20),
		PreviewMax: entities.PreviewRows,
	})
}

// handleCreateReport annotates an uploaded file and renders its preview
func (s *Server) handleCreateReport(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return &entities.MissingInputError{Source: "upload", Detail: "choose a piece report to upload"}
	}

	if !s.supports(header.Filename) {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, fmt.Sprintf(
			"%s is not a supported file type. Upload one of: %s",
			header.Filename, strings.Join(s.service.SupportedExtensions(), ", ")))
	}

	today, err := s.referenceDate(c.FormValue("reference_date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	result, err := s.service.BuildAgingReport(c.UserContext(), header.Filename, file, today)
	if err != nil {
		return err
	}

	id, err := s.store.Save(&entities.StoredReport{
		SourceName:    result.SourceName,
		ReferenceDate: result.Report.ReferenceDate,
		Rows:          result.Report.Rows,
		Preview:       result.Report.Table.Head(entities.PreviewRows),
		Workbook:      result.Workbook,
	})
	if err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	stored, err := s.store.Get(id)
	if err != nil {
		return err
	}

	c.Status(fiber.StatusCreated)
	return s.render(c, "report.html", newReportPage(stored, result.Report.InvalidReceiptDates))
}

// handleDownload sends a stored workbook as an attachment
func (s *Server) handleDownload(c *fiber.Ctx) error {
	report, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, report.DownloadName()))
	return c.Send(report.Workbook)
}

func (s *Server) supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range s.service.SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func (s *Server) referenceDate(value string) (entities.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.today(), nil
	}
	return services.NewDateNormalizer().ParseReference(value)
}

func (s *Server) render(c *fiber.Ctx, name string, data interface{}) error {
	c.Type("html", "utf-8")
	return s.templates.ExecuteTemplate(c, name, data)
}

func newReportPage(report *entities.StoredReport, invalidDates int) reportPage {
	page := reportPage{
		ID:                  report.ID,
		SourceName:          report.SourceName,
		ReferenceDate:       report.ReferenceDate.Time().Format("January 2, 2006"),
		Rows:                report.Rows,
		InvalidReceiptDates: invalidDates,
		DownloadURL:         "/reports/" + report.ID + "/download",
		DownloadName:        report.DownloadName(),
	}
	if report.Preview == nil {
		return page
	}

	page.Columns = report.Preview.Columns
	page.Preview = make([][]string, len(report.Preview.Rows))
	for i, row := range report.Preview.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.String()
		}
		page.Preview[i] = cells
	}
	return page
}
