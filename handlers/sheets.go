package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/connosssss/trackr/repository"
	"github.com/connosssss/trackr/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName     = "history"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetDateFmt  = "2006-01-02"
	sheetClockFmt = "15:04:05"
	maxImportSize = 10 << 20 // 10 MiB
)

var sheetHeader = []interface{}{"Date", "Start Time", "End Time", "Duration", "Group Name"}

// SheetsHandler moves session history in and out of .xlsx spreadsheets.
type SheetsHandler struct {
	repo *repository.SessionsRepository
}

func NewSheetsHandler(repo *repository.SessionsRepository) *SheetsHandler {
	return &SheetsHandler{repo: repo}
}

// Export streams the caller's full history as an .xlsx attachment with the
// columns Date, Start Time, End Time, Duration (HH:MM:SS) and Group Name.
// Absent values render as "-".
func (h *SheetsHandler) Export(c *gin.Context) {
	sessions, err := h.repo.GetAllSessions(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheetName)
	_ = f.SetColWidth(sheetName, "A", "D", 15)
	_ = f.SetColWidth(sheetName, "E", "E", 20)
	_ = f.SetSheetRow(sheetName, "A1", &sheetHeader)

	for i := range sessions {
		s := &sessions[i]
		endTime := "-"
		if s.EndTime != nil {
			endTime = s.EndTime.Format(sheetClockFmt)
		}
		duration := "-"
		if s.Duration != nil {
			duration = formatClock(*s.Duration)
		}
		group := "-"
		if s.Group != nil && *s.Group != "" {
			group = *s.Group
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheetName, cell, &[]interface{}{
			s.StartTime.Format(sheetDateFmt),
			s.StartTime.Format(sheetClockFmt),
			endTime,
			duration,
			group,
		})
	}

	c.Header("Content-Disposition", `attachment; filename="history.xlsx"`)
	c.Header("Content-Type", xlsxMIME)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
	}
}

// Import bulk-creates sessions from an uploaded spreadsheet in the export
// format. Rows missing a date or start time are skipped, not fatal; the
// response reports imported and skipped counts.
func (h *SheetsHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file is required"))
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file too large"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if !mimetype.Detect(data).Is(xlsxMIME) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file must be an .xlsx spreadsheet"))
		return
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot read spreadsheet"))
		return
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot read spreadsheet"))
		return
	}

	userID := c.GetInt("userId")
	imported, skipped := 0, 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		in, ok := parseSheetRow(row)
		if !ok {
			skipped++
			continue
		}
		if _, err := h.repo.CreateSession(userID, in); err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
			return
		}
		imported++
	}

	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"imported": imported,
		"skipped":  skipped,
	}))
}

// parseSheetRow decodes one data row of the export format. A row without a
// parsable date and start time is rejected; end time, duration and group
// are optional ("-" or empty).
func parseSheetRow(row []string) (repository.SessionInput, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	date, startClock := cell(0), cell(1)
	if date == "" || startClock == "" {
		return repository.SessionInput{}, false
	}
	start, err := time.ParseInLocation(sheetDateFmt+" "+sheetClockFmt, date+" "+startClock, time.Local)
	if err != nil {
		return repository.SessionInput{}, false
	}

	in := repository.SessionInput{StartTime: start}

	if v := cell(2); v != "" && v != "-" {
		end, err := time.ParseInLocation(sheetDateFmt+" "+sheetClockFmt, date+" "+v, time.Local)
		if err != nil {
			return repository.SessionInput{}, false
		}
		in.EndTime = &end
	}
	if v := cell(3); v != "" && v != "-" {
		seconds, err := parseClock(v)
		if err != nil {
			return repository.SessionInput{}, false
		}
		in.Duration = &seconds
	}
	if v := cell(4); v != "" && v != "-" {
		group := v
		in.Group = &group
	}
	return in, true
}

// formatClock renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func formatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// parseClock reads an HH:MM:SS duration back into seconds.
func parseClock(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	var total int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
