// Package driven defines the interfaces that core services call OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and the adapters and connectors
// implement them:
//
//   - VaultStore: the Dropbox-hosted Obsidian vault (files + shared links)
//   - Cache: Redis-backed tokens, timestamps and cycle dates
//   - KnowledgeBase: the Notion Knowledge Hub database
//   - Mailbox: Gmail message search
//   - LLMService: chat completions for the reflection emails
//   - Mailer: outbound SMTP mail
//   - PromptStore: reflection prompt templates
//   - TokenProvider: OAuth refresh-token grants
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
