package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dayflow.app/dayflow/directory"
	"dayflow.app/dayflow/web/common"
	"dayflow.app/dayflow/web/middlewares"
)

type ContactUpdateDTO struct {
	FullName  *string `json:"fullName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	AvatarRef *string `json:"avatarRef,omitempty"`
}

func (h *Handler) GetProfile(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	emp, err := h.Directory.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(emp))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	var dto ContactUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", common.FormatBindingError(err)))
		return
	}

	emp, err := h.Directory.UpdateContactInfo(c.Request.Context(), identity.UserID, directory.ContactUpdate{
		FullName:  dto.FullName,
		Phone:     dto.Phone,
		Address:   dto.Address,
		AvatarRef: dto.AvatarRef,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(emp))
}

// UploadDocument stores one document in the object store and appends its ref
// to the caller's profile. The ref is returned; presigning for download is
// the client's follow-up call.
func (h *Handler) UploadDocument(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", "file is required"))
		return
	}

	ext := filepath.Ext(file.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
	default:
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", "unsupported file type"))
		return
	}

	name := c.DefaultPostForm("name", file.Filename)
	key := fmt.Sprintf("documents/%s/%s%s", identity.UserID, uuid.NewString(), ext)

	if h.Documents != nil {
		src, err := file.Open()
		if err != nil {
			common.RespondError(c, err)
			return
		}
		defer src.Close()

		if _, err := h.Documents.WriteFile(c.Request.Context(), key, src, file.Header.Get("Content-Type")); err != nil {
			common.RespondError(c, err)
			return
		}
	} else {
		// Local fallback for development without an object store.
		key = filepath.Join("uploads", filepath.Base(key))
		if err := c.SaveUploadedFile(file, key); err != nil {
			common.RespondError(c, err)
			return
		}
	}

	emp, err := h.Directory.AddDocument(c.Request.Context(), identity.UserID, name, key)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(emp))
}

// DocumentURL presigns a stored ref for download.
func (h *Handler) DocumentURL(c *gin.Context) {
	ref := c.Query("ref")
	if ref == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", "ref is required"))
		return
	}
	if h.Documents == nil {
		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"url": ref}))
		return
	}

	url, err := h.Documents.PresignGet(c.Request.Context(), ref, 15*time.Minute)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"url": url}))
}
