package web

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/logger"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	data := indexData{
		pageData: pageData{
			Title:         "Create",
			Authenticated: s.auth.IsAuthenticated(c.Context()),
			Error:         c.Query("error"),
		},
		LearnedEnabled: s.learner != nil,
		DocumentURL:    c.Query("doc_url"),
	}
	data.ReferenceCount, _ = strconv.Atoi(c.Query("refs"))
	if s.learner != nil {
		data.LearnedCount, _ = s.learner.Count(c.Context())
	}
	return s.render(c, "index", data)
}

func (s *Server) handleLearnPage(c *fiber.Ctx) error {
	data := learnData{
		pageData: pageData{
			Title:         "Learn",
			Authenticated: s.auth.IsAuthenticated(c.Context()),
			Error:         c.Query("error"),
			Notice:        c.Query("notice"),
		},
		LearnedEnabled: s.learner != nil,
	}
	data.ChunksAdded, _ = strconv.Atoi(c.Query("learned"))
	if s.learner != nil {
		data.LearnedCount, _ = s.learner.Count(c.Context())
	}
	return s.render(c, "learn", data)
}

func (s *Server) handleAbout(c *fiber.Ctx) error {
	return s.render(c, "about", pageData{
		Title:         "About",
		Authenticated: s.auth.IsAuthenticated(c.Context()),
	})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()

	loginURL, err := s.auth.LoginURL(state)
	if err != nil {
		return s.redirectError(c, "/", "Google OAuth is not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET.")
	}

	s.newState(state)
	return c.Redirect(loginURL, fiber.StatusFound)
}

func (s *Server) handleCallback(c *fiber.Ctx) error {
	if !s.consumeState(c.Query("state")) {
		return s.redirectError(c, "/", "Login failed: state mismatch. Please try again.")
	}
	if errMsg := c.Query("error"); errMsg != "" {
		return s.redirectError(c, "/", "Login was denied: "+errMsg)
	}

	if err := s.auth.HandleCallback(c.Context(), c.Query("code")); err != nil {
		logger.Warn("oauth callback failed: %v", err)
		return s.redirectError(c, "/", "Login failed. Please try again.")
	}
	return c.Redirect("/", fiber.StatusFound)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if err := s.auth.Logout(); err != nil {
		logger.Warn("logout failed: %v", err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

func (s *Server) handleCreateDocument(c *fiber.Ctx) error {
	if !s.auth.IsAuthenticated(c.Context()) {
		return c.Redirect("/login", fiber.StatusFound)
	}

	result, err := s.creator.Create(c.Context(), driving.CreateRequest{
		Title:      c.FormValue("document_title"),
		Content:    c.FormValue("document_content"),
		UseLearned: c.FormValue("use_learned_data") == "on",
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return s.redirectError(c, "/", "Please enter a project description.")
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.Redirect("/login", fiber.StatusFound)
		default:
			logger.Warn("document creation failed: %v", err)
			return s.redirectError(c, "/", "Document creation failed. Please try again.")
		}
	}

	target := fmt.Sprintf("/?doc_url=%s&refs=%d",
		url.QueryEscape(result.Handle.URL), result.ReferenceCount)
	return c.Redirect(target, fiber.StatusFound)
}

func (s *Server) handleUploadDocument(c *fiber.Ctx) error {
	if s.learner == nil {
		return s.redirectError(c, "/learn", "Learning is not configured.")
	}

	header, err := c.FormFile("document_file")
	if err != nil {
		return s.redirectError(c, "/learn", "Please choose a file to upload.")
	}

	file, err := header.Open()
	if err != nil {
		return s.redirectError(c, "/learn", "Could not read the uploaded file.")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return s.redirectError(c, "/learn", "Could not read the uploaded file.")
	}

	count, err := s.learner.LearnFile(c.Context(), header.Filename, content,
		c.FormValue("document_category"), c.FormValue("document_tags"))
	if err != nil {
		return s.redirectError(c, "/learn", learnErrorMessage(err))
	}

	return c.Redirect("/learn?learned="+strconv.Itoa(count), fiber.StatusFound)
}

func (s *Server) handleLearnText(c *fiber.Ctx) error {
	if s.learner == nil {
		return s.redirectError(c, "/learn", "Learning is not configured.")
	}

	count, err := s.learner.LearnText(c.Context(), c.FormValue("document_text"),
		c.FormValue("text_category"), c.FormValue("text_tags"))
	if err != nil {
		return s.redirectError(c, "/learn", learnErrorMessage(err))
	}

	return c.Redirect("/learn?learned="+strconv.Itoa(count), fiber.StatusFound)
}

func (s *Server) handleClearLearned(c *fiber.Ctx) error {
	if s.learner == nil {
		return s.redirectError(c, "/learn", "Learning is not configured.")
	}

	if err := s.learner.Clear(c.Context()); err != nil {
		logger.Warn("clearing learned data failed: %v", err)
		return s.redirectError(c, "/learn", "Clearing learned data failed.")
	}

	return c.Redirect("/learn?notice="+url.QueryEscape("All learned data deleted."), fiber.StatusFound)
}

func (s *Server) handleLoginStatus(c *fiber.Ctx) error {
	status := fiber.Map{
		"authenticated": s.auth.IsAuthenticated(c.Context()),
	}
	if s.learner != nil {
		count, _ := s.learner.Count(c.Context())
		status["learned_chunks"] = count
	}
	return c.JSON(status)
}

func (s *Server) handleHealthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// redirectError sends the browser back to a page with a user-facing
// error message in the query string.
func (s *Server) redirectError(c *fiber.Ctx, page, message string) error {
	return c.Redirect(page+"?error="+url.QueryEscape(message), fiber.StatusFound)
}

// learnErrorMessage maps ingestion errors onto user-facing text.
func learnErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Nothing to learn: the input was empty."
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "Unsupported file format. Upload .txt, .md, .pdf, .docx or .xlsx files."
	case errors.Is(err, domain.ErrDocumentProcessing):
		return "The document could not be processed."
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return "The embedding provider is unreachable."
	default:
		logger.Warn("learning failed: %v", err)
		return "Learning failed. Please try again."
	}
}
