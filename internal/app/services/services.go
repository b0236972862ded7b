package services

// Services defined in this package:
// - AdminGate: checks the shared admin passphrase
// - AttendanceService: daily check-in, history and today's board
// - StoreService: catalog, purchases and item administration
// - SeatingService: the 36-seat chart and its admin replacement
// - ExportService: monthly attendance grid and its CSV rendering
// - StudentService: roster reads and admin provisioning
// - AuthService: student login and session tokens
