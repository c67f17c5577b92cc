package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// Days are interpreted in UTC, matching how the diary stores entry times.
func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from, err := parseDay(c.DefaultQuery("from", now.AddDate(0, 0, -6).Format("2006-01-02")))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date")
	}
	to, err := parseDay(c.DefaultQuery("to", now.Format("2006-01-02")))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("`to` must be on/after `from`")
	}
	return from, to, nil
}
