// cmd/mirscan/main.go
package main

import (
	"mirscan/internal/app"
	"mirscan/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
