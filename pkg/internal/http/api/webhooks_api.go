package api

import (
	"github.com/diirtv/stations/pkg/internal/gap"
	"github.com/diirtv/stations/pkg/internal/http/exts"
	"github.com/diirtv/stations/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func addressUpdated(c *fiber.Ctx) error {
	var data services.AddressUpdatedInput
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var notifier services.AddressNotifier
	if gap.Wallet != nil {
		notifier = gap.NewWalletAPI(gap.Wallet, "")
	}
	if err := services.HandleAddressUpdated(c.UserContext(), notifier, data); err != nil {
		return exts.ToFiberError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func transcodeFinished(c *fiber.Ctx) error {
	var data services.TranscodeFinishedInput
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.HandleTranscodeFinished(c.UserContext(), data); err != nil {
		return exts.ToFiberError(err)
	}
	log.Info().Str("publish", data.PublishID).Bool("failed", data.Error != nil).Msg("Transcoding finished.")
	return c.SendStatus(fiber.StatusOK)
}

func uploadFailed(c *fiber.Ctx) error {
	var data services.UploadFailedInput
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.HandleUploadFailed(c.UserContext(), data); err != nil {
		return exts.ToFiberError(err)
	}
	log.Warn().Str("publish", data.PublishID).Msg("Upload failed.")
	return c.SendStatus(fiber.StatusOK)
}
