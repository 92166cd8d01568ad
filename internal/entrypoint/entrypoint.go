// Package entrypoint wires the application together: configuration, the
// store session, the library service and the console menu.
package entrypoint

import (
	"log"
	"os"

	"github.com/mlorenzo/librarian/internal/config"
	"github.com/mlorenzo/librarian/internal/console"
	"github.com/mlorenzo/librarian/internal/database"
	"github.com/mlorenzo/librarian/internal/library"
)

// Run opens the store session, runs the menu loop and guarantees the session
// is closed on every exit path.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting librarian v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Failed to close database: %v", closeErr)
		}
	}()

	svc := library.NewService(db.DB)
	menu := console.NewMenu(svc, os.Stdin, os.Stdout, cfg.Console.MaxInputRetries)
	return menu.Run()
}
