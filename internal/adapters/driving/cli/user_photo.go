package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// photoInfo describes a user photo without its bytes.
type photoInfo struct {
	User     string `json:"user" yaml:"user"`
	MimeType string `json:"mime_type" yaml:"mime_type"`
	Width    int64  `json:"width" yaml:"width"`
	Height   int64  `json:"height" yaml:"height"`
	Size     int    `json:"size" yaml:"size"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
}

// TableHeader returns the column names used by TableRow.
func (p photoInfo) TableHeader() []string {
	return []string{"User", "Type", "Width", "Height", "Bytes", "File"}
}

// TableRow returns the row cells.
func (p photoInfo) TableRow() []string {
	return []string{p.User, p.MimeType, fmt.Sprint(p.Width), fmt.Sprint(p.Height), fmt.Sprint(p.Size), p.File}
}

var userPhotoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage user photos",
}

var userPhotoGetCmd = &cobra.Command{
	Use:   "get <user>",
	Short: "Show a user's photo, optionally saving it to a file",
	Args:  exactArgs(1),
	RunE:  runUserPhotoGet,
}

var userPhotoSetCmd = &cobra.Command{
	Use:   "set <user> <file>",
	Short: "Upload a JPEG, PNG, GIF or BMP file as the user's photo",
	Args:  exactArgs(2),
	RunE:  runUserPhotoSet,
}

var userPhotoRemoveCmd = &cobra.Command{
	Use:   "remove <user>",
	Short: "Delete a user's photo",
	Args:  exactArgs(1),
	RunE:  runUserPhotoRemove,
}

func init() {
	userPhotoGetCmd.Flags().String("file", "", "Write the image to this file")
	userPhotoRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	userPhotoCmd.AddCommand(userPhotoGetCmd, userPhotoSetCmd, userPhotoRemoveCmd)
	userCmd.AddCommand(userPhotoCmd)
}

func runUserPhotoGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	target := domain.NormalizeEmail(args[0], svc.Domain())

	photo, err := svc.GetUserPhoto(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, target, err)
	}

	info := photoInfo{User: target, MimeType: photo.MimeType, Width: photo.Width, Height: photo.Height, Size: len(photo.Data)}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		if err := os.WriteFile(file, photo.Data, 0o644); err != nil {
			return fmt.Errorf("write photo: %w", err)
		}
		info.File = file
	}
	return printer.Print(info)
}

func runUserPhotoSet(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[1])
	if err != nil {
		return domain.NewErrorRecord(err, domain.CategoryObjectNotFound, activity(cmd), args[1])
	}
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return change(cmd, "Set photo from "+args[1], target, func() error {
		_, err := svc.UpdateUserPhoto(cmd.Context(), args[0], data, mime.TypeByExtension(filepath.Ext(args[1])))
		if err == nil {
			printer.Success("Updated photo of %s", target)
		}
		return err
	})
}

func runUserPhotoRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return destructive(cmd, "remove the photo of", target, force, func() error {
		return svc.DeleteUserPhoto(cmd.Context(), args[0])
	})
}
