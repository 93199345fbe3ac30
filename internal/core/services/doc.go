// Package services implements the vault automations behind the driving
// ports: journals, weekly planning notes, cycle scheduling, Knowledge Hub
// sync, reflection emails, token refresh and the vault-root organiser.
//
// Services depend only on the driven port interfaces, so every automation
// is testable against in-memory fakes.
package services
