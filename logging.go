package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const logKey = "log"

func logging(c *gin.Context) {
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{
		"id":     requestid.Get(c),
		"method": c.Request.Method,
		"url":    c.Request.URL.String(),
	})
	c.Set(logKey, log)

	c.Next()

	for _, err := range c.Errors {
		log.Error(err.Error())
		c.String(http.StatusInternalServerError, err.Error())
	}

	log.WithFields(logrus.Fields{
		"code":     c.Writer.Status(),
		"bytes":    c.Writer.Size(),
		"duration": time.Since(start).Seconds(),
	}).Info("Request complete")
}

// log returns the request's logger, or the standard logger outside of a
// request.
func log(ctx context.Context) *logrus.Entry {
	if l, ok := ctx.Value(logKey).(*logrus.Entry); ok {
		return l
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
