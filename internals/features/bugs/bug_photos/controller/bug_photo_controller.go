package controller

import (
	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/features/bugs/bug_photos/dto"
	"laporbug_backend/internals/features/bugs/bug_photos/service"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
	helperOSS "laporbug_backend/internals/helpers/oss"
)

type BugPhotoController struct {
	Service *service.PhotoService
}

func NewBugPhotoController(svc *service.PhotoService) *BugPhotoController {
	return &BugPhotoController{Service: svc}
}

func uintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, helper.ErrValidation("%s tidak valid", name)
	}
	return uint(id), nil
}

// GET /api/bug-photos/:id_bug_report
func (pc *BugPhotoController) List(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reportID, err := uintParam(c, "id_bug_report")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := pc.Service.List(c.UserContext(), p, reportID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(rows) == 0 {
		return helper.JsonOK(c, "Belum ada foto", []dto.BugPhotoResponse{})
	}
	return helper.JsonOK(c, "Daftar foto laporan", dto.ToBugPhotoResponses(rows))
}

// POST /api/bug-photos/:id_bug_report (multipart, field "files")
func (pc *BugPhotoController) Upload(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reportID, err := uintParam(c, "id_bug_report")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Request harus multipart/form-data")
	}
	headers, _ := helperOSS.CollectUploadFiles(form, nil)
	if len(headers) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Field files wajib berisi minimal 1 foto")
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := helperOSS.ReadFileHeader(fh, pc.Service.MaxSize)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		files = append(files, service.UploadFile{Filename: fh.Filename, Data: data})
	}

	rows, err := pc.Service.Upload(c.UserContext(), p, reportID, files)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Foto berhasil diunggah", dto.ToBugPhotoResponses(rows))
}

// DELETE /api/bug-photos/photo/:id
func (pc *BugPhotoController) Delete(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	photoID, err := uintParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := pc.Service.Delete(c.UserContext(), p, photoID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Foto berhasil dihapus", res)
}
