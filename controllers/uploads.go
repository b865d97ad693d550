package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quinbingo/quinbingo-backend/game"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

var (
	soundExts = map[string]bool{".mp3": true, ".wav": true, ".ogg": true}
	imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

	soundKinds = map[string]game.MediaKind{
		"background_music": game.MediaBackgroundMusic,
		"winner_sound":     game.MediaWinnerSound,
		"ball_sound":       game.MediaBallSound,
		"countdown_sound":  game.MediaCountdownSound,
	}
)

// UploadSound handles POST /api/uploads/sound. The "kind" form field
// names which of the four sound slots the file replaces.
func (api *API) UploadSound(c *gin.Context) {
	kindName := c.PostForm("kind")
	kind, ok := soundKinds[kindName]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown sound kind %q", kindName)})
		return
	}

	filename, err := saveUpload(c, api.Cfg.SoundDir, soundExts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Game.SetMedia(kind, filename); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}

	logger.Infof("uploaded %s -> %s", kindName, filename)
	c.JSON(http.StatusOK, gin.H{"message": "sound uploaded", "filename": filename})
}

// UploadImage handles POST /api/uploads/image for sponsor and prize
// artwork. Images are referenced by filename from the templates, so no
// state mutation is involved.
func (api *API) UploadImage(c *gin.Context) {
	filename, err := saveUpload(c, api.Cfg.ImageDir, imageExts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Infof("uploaded image %s", filename)
	c.JSON(http.StatusOK, gin.H{"message": "image uploaded", "filename": filename})
}

// saveUpload stores the "file" form field under dir. The stored name is
// the sanitized base name of the upload; path separators and dot-dot
// segments never reach the filesystem.
func saveUpload(c *gin.Context, dir string, allowed map[string]bool) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("file field is required")
	}

	name := filepath.Base(filepath.Clean(file.Filename))
	ext := strings.ToLower(filepath.Ext(name))
	if name == "." || name == string(filepath.Separator) || !allowed[ext] {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return name, nil
}
