// Package airlines imports all airline adapter packages to trigger
// their init() registration. Import this package for side effects only.
package airlines

import (
	_ "ticketparser/internal/airlines/airbusan"
	_ "ticketparser/internal/airlines/eastar"
	_ "ticketparser/internal/airlines/jejuair"
	_ "ticketparser/internal/airlines/jinair"
)
