// Package services implements the server use cases on top of the
// repositories: registration, login and profile management in UserService,
// expense bookkeeping in ExpenseService.
package services
