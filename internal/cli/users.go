package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Malinga14/board-app/internal/seed"
)

var usersCmd = &cobra.Command{
	Use:   "users [query]",
	Short: "Search the user directory by name or email",
	RunE:  runUsers,
}

func runUsers(cmd *cobra.Command, args []string) error {
	users := seed.SearchUsers(seed.Users(), strings.Join(args, " "))
	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}
	for _, u := range users {
		fmt.Printf("%s%-8s%s %s%s%s  %s%s%s\n",
			colorMagenta, u.ID, colorReset,
			colorBold, u.Name, colorReset,
			colorDim, u.Email, colorReset)
	}
	return nil
}
