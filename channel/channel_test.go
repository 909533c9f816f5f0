package channel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wsbridge/wsbridge-go/mocks"
	"github.com/wsbridge/wsbridge-go/model"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestChannelSuite(t *testing.T) {
	suite.Run(t, new(ChannelSuite))
}

type ChannelSuite struct {
	suite.Suite

	sut *MemoryChannel
}

func (s *ChannelSuite) BeforeTest(suiteName, testName string) {
	s.sut = NewMemoryChannel(3, 100*time.Millisecond)
}

func (s *ChannelSuite) put(bodies ...string) error {
	tx := s.sut.Transaction()
	tx.Begin()
	defer tx.Close()

	for _, body := range bodies {
		if err := tx.Put(model.NewEvent([]byte(body))); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *ChannelSuite) Test_Defaults() {
	sut := NewMemoryChannel(0, 0)
	assert.Equal(s.T(), DefaultCapacity, sut.Capacity())
	assert.Equal(s.T(), DefaultKeepAlive, sut.keepAlive)
}

func (s *ChannelSuite) Test_PutTake() {
	assert.Nil(s.T(), s.put("a", "b"))
	assert.Equal(s.T(), 2, s.sut.Len())

	tx := s.sut.Transaction()
	tx.Begin()
	event, err := tx.Take()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "a", string(event.Body))
	event, err = tx.Take()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "b", string(event.Body))
	assert.Nil(s.T(), tx.Commit())
	tx.Close()

	assert.Equal(s.T(), 0, s.sut.Len())
}

func (s *ChannelSuite) Test_UncommittedPutsInvisible() {
	tx := s.sut.Transaction()
	tx.Begin()
	assert.Nil(s.T(), tx.Put(model.NewEvent([]byte("staged"))))
	assert.Equal(s.T(), 0, s.sut.Len())

	// close without commit discards the put
	tx.Close()
	assert.Equal(s.T(), 0, s.sut.Len())
}

func (s *ChannelSuite) Test_Rollback() {
	assert.Nil(s.T(), s.put("a", "b", "c"))

	tx := s.sut.Transaction()
	tx.Begin()
	first, _ := tx.Take()
	second, _ := tx.Take()
	assert.Equal(s.T(), 1, s.sut.Len())
	assert.Nil(s.T(), tx.Rollback())
	tx.Close()

	assert.Equal(s.T(), 3, s.sut.Len())

	// order is preserved
	tx = s.sut.Transaction()
	tx.Begin()
	event, _ := tx.Take()
	assert.Equal(s.T(), first, event)
	event, _ = tx.Take()
	assert.Equal(s.T(), second, event)
	event, _ = tx.Take()
	assert.Equal(s.T(), "c", string(event.Body))
	assert.Nil(s.T(), tx.Commit())
	tx.Close()
}

func (s *ChannelSuite) Test_CloseRollsBackOpenTransaction() {
	assert.Nil(s.T(), s.put("a"))

	tx := s.sut.Transaction()
	tx.Begin()
	_, _ = tx.Take()
	tx.Close()

	assert.Equal(s.T(), 1, s.sut.Len())
}

func (s *ChannelSuite) Test_Full() {
	assert.Nil(s.T(), s.put("a", "b"))
	err := s.put("c", "d")
	assert.True(s.T(), errors.Is(err, ErrChannelFull))
	assert.Equal(s.T(), 2, s.sut.Len())
	assert.Nil(s.T(), s.put("c"))
}

func (s *ChannelSuite) Test_TakeTimeout() {
	tx := s.sut.Transaction()
	tx.Begin()
	defer tx.Close()

	start := time.Now()
	event, err := tx.Take()
	assert.Nil(s.T(), err)
	assert.Nil(s.T(), event)
	assert.GreaterOrEqual(s.T(), time.Since(start), 100*time.Millisecond)
}

func (s *ChannelSuite) Test_TakeWaitsForCommit() {
	sut := NewMemoryChannel(10, 5*time.Second)

	result := make(chan *model.Event, 1)
	go func() {
		tx := sut.Transaction()
		tx.Begin()
		defer tx.Close()
		event, _ := tx.Take()
		_ = tx.Commit()
		result <- event
	}()

	time.Sleep(50 * time.Millisecond)
	assert.Nil(s.T(), NewProcessor(sut).ProcessEvent(model.NewEvent([]byte("late"))))

	select {
	case event := <-result:
		assert.Equal(s.T(), "late", string(event.Body))
	case <-time.After(time.Second):
		s.T().Fatal("take did not wake up")
	}
}

func (s *ChannelSuite) Test_CloseWakesTakers() {
	sut := NewMemoryChannel(10, 5*time.Second)

	result := make(chan error, 1)
	go func() {
		tx := sut.Transaction()
		tx.Begin()
		defer tx.Close()
		_, err := tx.Take()
		result <- err
	}()

	time.Sleep(50 * time.Millisecond)
	sut.Close()
	sut.Close()
	assert.True(s.T(), sut.IsClosed())

	select {
	case err := <-result:
		assert.True(s.T(), errors.Is(err, ErrChannelClosed))
	case <-time.After(time.Second):
		s.T().Fatal("take did not wake up")
	}

	err := NewProcessor(sut).ProcessEvent(model.NewEvent(nil))
	assert.True(s.T(), errors.Is(err, ErrChannelClosed))
}

func (s *ChannelSuite) Test_TransactionState() {
	tx := s.sut.Transaction()
	assert.True(s.T(), errors.Is(tx.Put(model.NewEvent(nil)), ErrTransactionState))
	_, err := tx.Take()
	assert.True(s.T(), errors.Is(err, ErrTransactionState))
	assert.True(s.T(), errors.Is(tx.Commit(), ErrTransactionState))
	assert.True(s.T(), errors.Is(tx.Rollback(), ErrTransactionState))

	tx.Begin()
	assert.Nil(s.T(), tx.Commit())
	assert.True(s.T(), errors.Is(tx.Commit(), ErrTransactionState))
	tx.Close()
}

func (s *ChannelSuite) Test_Processor() {
	processor := NewProcessor(s.sut)
	for _, body := range []string{"a", "b", "c"} {
		assert.Nil(s.T(), processor.ProcessEvent(model.NewEvent([]byte(body))))
	}

	err := processor.ProcessEvent(model.NewEvent([]byte("d")))
	assert.True(s.T(), errors.Is(err, ErrChannelFull))
	assert.Equal(s.T(), 3, s.sut.Len())
}

func (s *ChannelSuite) Test_ProcessorRollsBackOnFailure() {
	ctrl := gomock.NewController(s.T())
	channel := mocks.NewMockChannel(ctrl)
	tx := mocks.NewMockTransaction(ctrl)

	channel.EXPECT().Transaction().Return(tx)
	gomock.InOrder(
		tx.EXPECT().Begin(),
		tx.EXPECT().Put(gomock.Any()).Return(nil),
		tx.EXPECT().Commit().Return(errors.New("boom")),
		tx.EXPECT().Rollback().Return(nil),
		tx.EXPECT().Close(),
	)

	err := NewProcessor(channel).ProcessEvent(model.NewEvent([]byte("x")))
	assert.NotNil(s.T(), err)
}
