package handlers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gaurav-singhh/LocaLinkBackend/models"
)

// fakeUserDB implements databases.UserDatabase with overridable functions
type fakeUserDB struct {
	findOne   func(filter interface{}) (*models.User, error)
	insertOne func(user models.User) (*models.User, error)
	updateOne func(filter interface{}, update interface{}) (*mongo.UpdateResult, error)

	mu      sync.Mutex
	updates []interface{}
	inserts []models.User
}

func (f *fakeUserDB) FindOne(ctx context.Context, filter interface{}) (*models.User, error) {
	if f.findOne != nil {
		return f.findOne(filter)
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserDB) InsertOne(ctx context.Context, user models.User) (*models.User, error) {
	f.mu.Lock()
	f.inserts = append(f.inserts, user)
	f.mu.Unlock()
	if f.insertOne != nil {
		return f.insertOne(user)
	}
	return &user, nil
}

func (f *fakeUserDB) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	f.updates = append(f.updates, update)
	f.mu.Unlock()
	if f.updateOne != nil {
		return f.updateOne(filter, update)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeUserDB) EnsureIndexes(ctx context.Context) error { return nil }

// fakeVerificationDB implements databases.SignupVerificationDatabase
type fakeVerificationDB struct {
	findOne   func(filter interface{}) (*models.SignupVerification, error)
	insertOne func(v models.SignupVerification) (*models.SignupVerification, error)
	updateOne func(filter interface{}, update interface{}) error
	deleteOne func(filter interface{}) error

	mu      sync.Mutex
	updates []interface{}
	inserts []models.SignupVerification
	deletes []interface{}
}

func (f *fakeVerificationDB) FindOne(ctx context.Context, filter interface{}) (*models.SignupVerification, error) {
	if f.findOne != nil {
		return f.findOne(filter)
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeVerificationDB) InsertOne(ctx context.Context, v models.SignupVerification) (*models.SignupVerification, error) {
	f.mu.Lock()
	f.inserts = append(f.inserts, v)
	f.mu.Unlock()
	if f.insertOne != nil {
		return f.insertOne(v)
	}
	return &v, nil
}

func (f *fakeVerificationDB) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	f.mu.Lock()
	f.updates = append(f.updates, update)
	f.mu.Unlock()
	if f.updateOne != nil {
		return f.updateOne(filter, update)
	}
	return nil
}

func (f *fakeVerificationDB) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, filter)
	f.mu.Unlock()
	if f.deleteOne != nil {
		return f.deleteOne(filter)
	}
	return nil
}

func (f *fakeVerificationDB) DeleteCreatedBefore(ctx context.Context, cutoff interface{}) (int64, error) {
	return 0, nil
}

func (f *fakeVerificationDB) EnsureIndexes(ctx context.Context) error { return nil }

// fakeMailer records sent mail and can be told to fail
type fakeMailer struct {
	err error

	mu   sync.Mutex
	sent []fakeMailMessage
}

type fakeMailMessage struct {
	to      string
	subject string
	plain   string
}

func (f *fakeMailer) SendEmail(to, subject, plainText, htmlContent string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	f.sent = append(f.sent, fakeMailMessage{to: to, subject: subject, plain: plainText})
	f.mu.Unlock()
	return "msg-1", nil
}

// fakeSMS records sent texts and can be told to fail
type fakeSMS struct {
	err error

	mu   sync.Mutex
	sent []fakeSMSMessage
}

type fakeSMSMessage struct {
	to   string
	body string
}

func (f *fakeSMS) SendSMS(to, body string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	f.sent = append(f.sent, fakeSMSMessage{to: to, body: body})
	f.mu.Unlock()
	return "SM1", nil
}
