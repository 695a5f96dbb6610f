package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"userextra/internal/client"
	"userextra/internal/term"
	"userextra/internal/view"
)

func newListCmd(s *session) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user extras",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := url.Values{}
			if size > 0 {
				query.Set("page", strconv.Itoa(page))
				query.Set("size", strconv.Itoa(size))
			}

			v := view.NewListView(s.store, s.paths, query)
			v.Activate(cmd.Context())
			if err := term.NewRenderer(cmd.OutOrStdout()).List(v.Page()); err != nil {
				return err
			}
			return s.store.Snapshot().Err
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "zero-based page, used with --size")
	cmd.Flags().IntVar(&size, "size", 0, "page size, 0 lists everything")
	return cmd
}

func newGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user extra",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewDetailView(s.store, s.paths, args[0])
			v.Activate(cmd.Context())
			page := v.Page()
			if page.Err != nil {
				return page.Err
			}
			return term.NewRenderer(cmd.OutOrStdout()).Detail(page)
		},
	}
}

func bindForm(cmd *cobra.Command, f *view.Form) {
	cmd.Flags().StringVar(&f.FrontImage, "front", "", "front image reference")
	cmd.Flags().StringVar(&f.BackImage, "back", "", "back image reference")
	cmd.Flags().StringVar(&f.UserID, "user", "", "id of the owning user")
}

func newCreateCmd(s *session) *cobra.Command {
	var form view.Form

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user extra",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return submit(cmd, s, view.NewUpdateView(s.store, s.paths, ""), form)
		},
	}
	bindForm(cmd, &form)
	return cmd
}

func newUpdateCmd(s *session) *cobra.Command {
	var (
		form    view.Form
		partial bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a user extra; omitted fields become empty unless --partial is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !partial {
				return submit(cmd, s, view.NewUpdateView(s.store, s.paths, args[0]), form)
			}

			e, err := form.Record(args[0])
			if err != nil {
				return err
			}
			st := s.store.PartialUpdate(cmd.Context(), e)
			if !st.UpdateSuccess {
				return st.Err
			}
			return term.NewRenderer(cmd.OutOrStdout()).Detail(view.NewDetailView(s.store, s.paths, args[0]).Page())
		},
	}
	bindForm(cmd, &form)
	cmd.Flags().BoolVar(&partial, "partial", false, "only send the fields that are set")
	return cmd
}

func submit(cmd *cobra.Command, s *session, v *view.UpdateView, form view.Form) error {
	if !v.Submit(cmd.Context(), form) {
		return v.Err()
	}
	saved := s.store.Snapshot().Entity
	return term.NewRenderer(cmd.OutOrStdout()).Detail(view.NewDetailView(s.store, s.paths, saved.IDString()).Page())
}

func newDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user extra and its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewDeleteView(s.store, s.paths, args[0])
			if !v.Confirm(cmd.Context()) {
				return v.Err()
			}
			cmd.Printf("Deleted user extra %s\n", args[0])
			return nil
		},
	}
}

func newUploadCmd(s *session) *cobra.Command {
	var frontPath, backPath string

	cmd := &cobra.Command{
		Use:   "upload <id>",
		Short: "Upload the front and back images of a user extra",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			front, err := os.Open(frontPath)
			if err != nil {
				return fmt.Errorf("open front image: %w", err)
			}
			defer front.Close()
			back, err := os.Open(backPath)
			if err != nil {
				return fmt.Errorf("open back image: %w", err)
			}
			defer back.Close()

			saved, err := s.api.UploadImages(cmd.Context(), args[0],
				client.Image{Filename: filepath.Base(frontPath), Reader: front},
				client.Image{Filename: filepath.Base(backPath), Reader: back},
			)
			if err != nil {
				return err
			}
			s.log.Debug().Str("id", saved.IDString()).Msg("images uploaded")

			// Show the record as the detail screen would after navigating to it.
			v := view.NewDetailView(s.store, s.paths, saved.IDString())
			v.Activate(cmd.Context())
			return term.NewRenderer(cmd.OutOrStdout()).Detail(v.Page())
		},
	}

	cmd.Flags().StringVar(&frontPath, "front", "", "path of the front image")
	cmd.Flags().StringVar(&backPath, "back", "", "path of the back image")
	_ = cmd.MarkFlagRequired("front")
	_ = cmd.MarkFlagRequired("back")
	return cmd
}
