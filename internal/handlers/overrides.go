package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cabanas/quote-service/internal/metrics"
	"github.com/cabanas/quote-service/internal/spreadsheet"
	"github.com/cabanas/quote-service/internal/tariff"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// maxImportSize caps uploaded workbooks.
	maxImportSize = 5 << 20
)

// OverridesResponse is the stored override blob.
type OverridesResponse struct {
	Overrides tariff.Overrides `json:"overrides"`
	Checksum  string           `json:"checksum"`
}

// SaveOverrideResponse reports the outcome of an override write.
type SaveOverrideResponse struct {
	Season   tariff.Season    `json:"season"`
	Table    tariff.Table     `json:"table"`
	Warnings []tariff.Warning `json:"warnings"`
	Checksum string           `json:"checksum"`
}

// ImportResponse reports the outcome of a workbook import.
type ImportResponse struct {
	SaveOverrideResponse
	Override  *tariff.Override        `json:"override"`
	RowErrors []spreadsheet.RowError `json:"rowErrors"`
	DryRun    bool                   `json:"dryRun"`
}

// GetOverrides returns the stored overrides of every season
// @Summary Stored tariff overrides
// @Tags admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} OverridesResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/admin/overrides [get]
func (h *Handler) GetOverrides(c *gin.Context) {
	ctx := c.Request.Context()

	o, err := h.overrides.Load(ctx)
	if err != nil {
		h.respondError(c, err, "Failed to load overrides")
		return
	}
	sum, err := h.overrides.Checksum(ctx)
	if err != nil {
		h.respondError(c, err, "Failed to load overrides")
		return
	}

	if sum != "" {
		c.Header("ETag", strconv.Quote(sum))
	}
	c.JSON(http.StatusOK, OverridesResponse{Overrides: o, Checksum: sum})
}

// PutOverride replaces one season's override
// @Summary Replace a season override
// @Description Omitted or null lists keep the built-in data; an empty discount list disables long-stay discounts. Send If-Match with the current checksum to guard against concurrent edits.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param season path string true "Season" Enums(summer, spring)
// @Param override body tariff.Override true "Override"
// @Success 200 {object} SaveOverrideResponse
// @Failure 400 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse
// @Router /api/v1/admin/overrides/{season} [put]
func (h *Handler) PutOverride(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}

	var ov tariff.Override
	if err := c.ShouldBindJSON(&ov); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if !h.checkIfMatch(c) {
		return
	}

	h.save(c, season, &ov)
}

// DeleteOverride removes a season's override so the built-in table applies
// @Summary Reset a season override
// @Tags admin
// @Security AdminKey
// @Param season path string true "Season" Enums(summer, spring)
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/overrides/{season} [delete]
func (h *Handler) DeleteOverride(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}
	if !h.checkIfMatch(c) {
		return
	}

	if err := h.overrides.ResetSeason(c.Request.Context(), season); err != nil {
		metrics.RecordOverrideSave(string(season), "error")
		h.respondError(c, err, "Failed to reset override")
		return
	}
	metrics.RecordOverrideSave(string(season), "ok")
	h.logger.Info().Str("season", string(season)).Msg("Reset tariff override")
	c.Status(http.StatusNoContent)
}

// ExportTariffs downloads the active table as an XLSX workbook
// @Summary Export tariffs to Excel
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security AdminKey
// @Param season path string true "Season" Enums(summer, spring)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/tariffs/{season}/export [get]
func (h *Handler) ExportTariffs(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}

	table, err := h.overrides.Active(c.Request.Context(), season)
	if err != nil {
		h.respondError(c, err, "Failed to load tariffs")
		return
	}
	content, err := spreadsheet.Export(table)
	if err != nil {
		h.respondError(c, err, "Failed to export tariffs")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="tarifas-%s.xlsx"`, season))
	c.Data(http.StatusOK, xlsxContentType, content)
}

// ImportTariffs replaces a season's override from an uploaded workbook
// @Summary Import tariffs from Excel
// @Description Rows that cannot be parsed are reported and skipped. A missing sheet keeps the built-in data for that list.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security AdminKey
// @Param season path string true "Season" Enums(summer, spring)
// @Param file formData file true "XLSX workbook"
// @Param dryRun query bool false "Parse without saving"
// @Param If-Match header string false "Checksum the import is based on"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/tariffs/{season}/import [post]
func (h *Handler) ImportTariffs(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	if fh.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := spreadsheet.Import(content)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp := ImportResponse{
		Override:  imported.Override,
		RowErrors: imported.Errors,
		DryRun:    c.Query("dryRun") == "true",
	}
	resp.Season = season

	if resp.DryRun {
		warnings, err := tariff.ValidateOverride(imported.Override)
		if err != nil {
			h.respondError(c, err, "Invalid tariffs")
			return
		}
		resp.Warnings = warnings
		resp.Table = tariff.MergeOverride(tariff.Builtin(season), imported.Override)
		c.JSON(http.StatusOK, resp)
		return
	}

	if !h.checkIfMatch(c) {
		return
	}
	saved, ok := h.persist(c, season, imported.Override)
	if !ok {
		return
	}
	resp.SaveOverrideResponse = saved
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) save(c *gin.Context, season tariff.Season, ov *tariff.Override) {
	resp, ok := h.persist(c, season, ov)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// persist writes the override and builds the response, or writes an error.
func (h *Handler) persist(c *gin.Context, season tariff.Season, ov *tariff.Override) (SaveOverrideResponse, bool) {
	ctx := c.Request.Context()

	warnings, err := h.overrides.SetSeason(ctx, season, ov)
	if err != nil {
		if tariff.AsValidationError(err) != nil {
			metrics.RecordOverrideSave(string(season), "invalid")
		} else {
			metrics.RecordOverrideSave(string(season), "error")
		}
		h.respondError(c, err, "Failed to save override")
		return SaveOverrideResponse{}, false
	}
	metrics.RecordOverrideSave(string(season), "ok")

	table, err := h.overrides.Active(ctx, season)
	if err != nil {
		h.respondError(c, err, "Failed to load tariffs")
		return SaveOverrideResponse{}, false
	}
	sum, err := h.overrides.Checksum(ctx)
	if err != nil {
		h.respondError(c, err, "Failed to load overrides")
		return SaveOverrideResponse{}, false
	}

	if warnings == nil {
		warnings = []tariff.Warning{}
	}
	c.Header("ETag", strconv.Quote(sum))
	return SaveOverrideResponse{Season: season, Table: table, Warnings: warnings, Checksum: sum}, true
}

// checkIfMatch enforces an If-Match precondition against the stored blob.
// A missing header always passes.
func (h *Handler) checkIfMatch(c *gin.Context) bool {
	want := c.GetHeader("If-Match")
	if want == "" {
		return true
	}
	if unq, err := strconv.Unquote(want); err == nil {
		want = unq
	}

	sum, err := h.overrides.Checksum(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load overrides")
		return false
	}
	if sum != want {
		c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: "overrides changed since they were read"})
		return false
	}
	return true
}
