package handlers

// @title Puzzle Landing API
// @version 1.0
// @description Upload signing, quoting, feedback and order forwarding for the custom puzzle landing page.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api

// @tag.name uploads
// @tag.description Signed media uploads

// @tag.name quotes
// @tag.description Price quotes

// @tag.name feedback
// @tag.description Customer feedback

// @tag.name orders
// @tag.description Order submission
