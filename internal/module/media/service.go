// Package media adds folder listing and renaming to the media resource.
package media

import (
	"context"
	"slices"
	"strings"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/resource"
)

const folderField = "folder"

// Service implements the media-specific operations.
type Service struct {
	media *resource.Service
}

// NewService creates a media Service over the media façade.
func NewService(media *resource.Service) *Service {
	return &Service{media: media}
}

// Folders returns the distinct non-empty folder names, sorted.
func (s *Service) Folders(ctx context.Context) ([]string, error) {
	records, err := s.media.All(ctx)
	if err != nil {
		return nil, err
	}

	folders := []string{}
	for _, r := range records {
		f, _ := r.String(folderField)
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(folders, f) {
			folders = append(folders, f)
		}
	}
	slices.Sort(folders)
	return folders, nil
}

// Rename changes the display name of a media item. The original file name
// is kept.
func (s *Service) Rename(ctx context.Context, id int64, name string) (domain.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	return s.media.Update(ctx, id, domain.Record{"name": name})
}
