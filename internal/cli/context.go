// Package cli provides the command-line interface for the pricewatch application.
package cli

import (
	"fmt"
	"sync"

	"github.com/law-makers/pricewatch/internal/app"
)

var (
	appMu     sync.Mutex
	globalApp *app.Application
)

// SetApp stores the Application built for the running command
func SetApp(a *app.Application) {
	appMu.Lock()
	defer appMu.Unlock()
	globalApp = a
}

// GetApp retrieves the Application built for the running command
func GetApp() *app.Application {
	appMu.Lock()
	defer appMu.Unlock()
	return globalApp
}

func requireApp() (*app.Application, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}
