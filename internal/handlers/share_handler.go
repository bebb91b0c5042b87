package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	apperrors "endpage/internal/errors"
	"endpage/internal/logger"
	"endpage/internal/models"
	"endpage/internal/services"
)

// markdown renderer for page content; raw HTML in the source is escaped
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

var sharePage = template.Must(template.New("share").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | The End Page</title>
<meta property="og:title" content="{{.Title}}">
<meta property="og:type" content="article">
</head>
<body class="tone-{{.Tone}}"{{if .Background}} style="{{.Background}}"{{end}}>
<main>
<h1>{{.Title}}</h1>
<article>{{.Content}}</article>
{{range .Medias}}<figure>{{if eq .Kind "image"}}<img src="{{.FullURL}}" alt="{{.OriginalFilename}}">{{else if eq .Kind "video"}}<video src="{{.FullURL}}" controls></video>{{else}}<audio src="{{.FullURL}}" controls></audio>{{end}}</figure>
{{end}}{{if .Votes}}<p class="rating">{{printf "%.1f" .AverageRating}} / 5 ({{.Votes}} votes)</p>{{end}}
</main>
</body>
</html>
`))

type shareView struct {
	Title         string
	Tone          models.Tone
	Background    template.CSS
	Content       template.HTML
	Medias        []models.Media
	AverageRating float64
	Votes         int
}

// ShareHandler renders public pages as standalone HTML.
type ShareHandler struct {
	endPageService services.EndPageServicer
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(endPageService services.EndPageServicer) *ShareHandler {
	return &ShareHandler{endPageService: endPageService}
}

// Show renders a public end page
// @Summary     Share page
// @Description HTML rendering of a public page. Supports If-None-Match; private pages are not found here.
// @Tags        share
// @Produce     html
// @Param       uuid path string true "End page UUID"
// @Success     200 {string} string "HTML page"
// @Success     304 "Not modified"
// @Failure     404 {string} string "End page not found"
// @Router      /share/{uuid} [get]
func (h *ShareHandler) Show(c *gin.Context) {
	page, err := h.endPageService.GetShared(c.Param("uuid"))
	if err != nil {
		respondWithText(c, err)
		return
	}

	body, err := renderShare(page)
	if err != nil {
		respondWithText(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=60")
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func renderShare(page *models.EndPage) ([]byte, error) {
	var content bytes.Buffer
	if err := md.Convert([]byte(page.Content), &content); err != nil {
		return nil, err
	}

	view := shareView{
		Title:   page.Title,
		Tone:    page.Tone,
		Content: template.HTML(content.String()),
		Medias:  page.Medias,
		Votes:   page.NumberOfVotes,
	}
	if page.AverageRating != nil {
		view.AverageRating = *page.AverageRating
	}
	if page.BackgroundType != nil && *page.BackgroundType == models.BackgroundColor && page.BackgroundValue != nil {
		view.Background = template.CSS("background-color: " + *page.BackgroundValue)
	}

	var out bytes.Buffer
	if err := sharePage.Execute(&out, view); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func respondWithText(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if appErr.Internal != nil {
		logger.Get().Errorw("share page error", "error", appErr.Internal.Error(), "path", c.Request.URL.Path)
	}
	c.String(appErr.StatusCode, appErr.Message)
}
