package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"signlearn/backend/translator"
	"signlearn/backend/utils"
)

type TranslatorController struct {
	Dict *translator.Dictionary
}

func NewTranslatorController(dict *translator.Dictionary) *TranslatorController {
	return &TranslatorController{Dict: dict}
}

// WordToGesture godoc
// @Summary Translate a word to a gesture
// @Tags translator
// @Produce json
// @Param word query string true "Word"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /translator/word-to-gesture [get]
func (tc *TranslatorController) WordToGesture(c *fiber.Ctx) error {
	word := strings.ToLower(strings.TrimSpace(c.Query("word")))
	if word == "" {
		return utils.BadRequest(c, "Please provide a word to translate")
	}

	entry, ok := tc.Dict.Lookup(word)
	if !ok {
		return utils.NotFound(c, "Translation for '"+word+"' not found", fiber.Map{
			"available_words": tc.Dict.Words(),
		})
	}
	return utils.Success(c, fiber.StatusOK, entry)
}

func (tc *TranslatorController) GestureToWord(c *fiber.Ctx) error {
	gesture := strings.ToLower(strings.TrimSpace(c.Query("gesture")))
	if gesture == "" {
		return utils.BadRequest(c, "Please provide a gesture description")
	}

	entry, ok := tc.Dict.Reverse(gesture)
	if !ok {
		return utils.NotFound(c, "No matching word found for this gesture")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"gesture": gesture,
		"word":    entry.Word,
	})
}

func (tc *TranslatorController) AllTranslations(c *fiber.Ctx) error {
	entries := tc.Dict.Entries()
	return utils.List(c, entries, len(entries))
}
