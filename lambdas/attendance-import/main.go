package main

import (
	"bytes"
	"context"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"dayflow.app/dayflow/attendance"
	"dayflow.app/dayflow/core"
	"dayflow.app/dayflow/core/apperror"
	"dayflow.app/dayflow/directory"
	"dayflow.app/dayflow/infrastructure/devops"
	"dayflow.app/dayflow/infrastructure/filesystem"
	"dayflow.app/dayflow/lambdas/attendance-import/helper"
)

// handler ingests badge-reader CSV exports dropped into the attendance
// bucket. Each session is replayed through the normal check-in/check-out
// path so the same uniqueness rules apply; rows that conflict with sessions
// recorded via the API are logged and skipped.
func handler(ctx context.Context, event events.S3Event) error {
	cfg, err := devops.Load(ctx)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	db, err := core.ConnectDB(cfg.DSN, cfg.MaxConnections, core.LogLevelWarn)
	if err != nil {
		return err
	}

	tracker := attendance.NewTracker(db, loc)
	dir := directory.NewService(db)

	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key
		log.Printf("importing %s from bucket %s", key, bucket)

		store, err := filesystem.NewStore(ctx, bucket)
		if err != nil {
			return err
		}

		var stream bytes.Buffer
		if err := store.ReadFile(ctx, key, &stream); err != nil {
			return err
		}

		eventRows, err := helper.ParseClockCSV(&stream, loc)
		if err != nil {
			log.Printf("skipping %s: %v", key, err)
			continue
		}

		sessions := helper.GroupEvents(eventRows)
		log.Printf("parsed %d events into %d sessions", len(eventRows), len(sessions))

		var imported, skipped int
		for _, session := range sessions {
			if err := importSession(ctx, tracker, dir, session); err != nil {
				log.Printf("skipping %s on %s: %v", session.EmployeeCode, session.Date, err)
				skipped++
				continue
			}
			imported++
		}
		log.Printf("done with %s: %d imported, %d skipped", key, imported, skipped)
	}

	return nil
}

func importSession(ctx context.Context, tracker *attendance.Tracker, dir *directory.Service, session helper.DaySession) error {
	emp, err := dir.GetByEmployeeCode(ctx, session.EmployeeCode)
	if err != nil {
		return err
	}

	_, err = tracker.CheckIn(ctx, emp.UserID, session.CheckIn)
	if err != nil && !errors.Is(err, apperror.ErrAlreadyCheckedIn) {
		return err
	}

	if session.CheckOut == nil {
		return nil
	}
	_, err = tracker.CheckOut(ctx, emp.UserID, *session.CheckOut)
	if err != nil && !errors.Is(err, apperror.ErrAlreadyCheckedOut) {
		return err
	}
	return nil
}

func main() {
	lambda.Start(handler)
}
