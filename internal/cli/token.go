package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/solat/internal/config"
	"github.com/Nixie-Tech-LLC/solat/internal/http/middleware"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin JWT",
		Long:  "Sign an HS256 token accepted by /api/admin. The secret defaults to JWT_SECRET (a .env file is read if present).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			sub, _ := f.GetString("sub")
			email, _ := f.GetString("email")
			role, _ := f.GetString("role")
			ttl, _ := f.GetDuration("ttl")
			secret, _ := f.GetString("secret")

			if secret == "" {
				if err := config.LoadDotEnv(); err != nil {
					return err
				}
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("no signing secret: pass --secret or set JWT_SECRET")
			}

			tok, err := middleware.GenerateJWT(sub, email, role, secret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("sub", "", "User id placed in the sub claim")
	f.String("email", "", "Email claim")
	f.String("role", "masjid_admin", "Role claim; super_admin manages every masjid")
	f.Duration("ttl", 24*time.Hour, "Token lifetime")
	f.String("secret", "", "Signing secret (default: $JWT_SECRET)")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
