package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/permissions"
	"github.com/vzo-kneginec/fire-brigade-api/config"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
)

const maxImageUploadBytes = 10 << 20

// CloudinaryHandler uploads hydrant photos to Cloudinary and appends the
// resulting URL to the hydrant record
type CloudinaryHandler struct {
	HDB databases.HydrantDatabase
}

// UploadHydrantImageHandler accepts a multipart "image" field
func (c CloudinaryHandler) UploadHydrantImageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	hydrantID := mux.Vars(r)["hydrant_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	hydrant, err := c.HDB.FindOne(context.Background(), bson.M{"_id": hydrantID})
	if err != nil {
		config.ErrorStatus("hydrant not found", http.StatusNotFound, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		config.ErrorStatus("image field is required", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	// CLOUDINARY_URL is read from the environment
	cld, err := cloudinary.New()
	if err != nil {
		config.ErrorStatus("failed to initialize cloudinary", http.StatusInternalServerError, w, err)
		return
	}
	resp, err := cld.Upload.Upload(r.Context(), file, uploader.UploadParams{Folder: "hydrants"})
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}

	images := append(hydrant.Images, resp.SecureURL)
	matched, err := c.HDB.UpdateOne(context.Background(), bson.M{"_id": hydrantID}, bson.M{"$set": bson.M{"images": images}})
	if err != nil {
		config.ErrorStatus("failed to update hydrant", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("hydrant not found", http.StatusNotFound, w, nil)
		return
	}

	b, err := json.Marshal(map[string]interface{}{
		"url":    resp.SecureURL,
		"images": images,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
