package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	Fullname               string    `json:"fullname" db:"fullname"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	Bio                    string    `json:"bio" db:"bio"`
	ProfilePicture         string    `json:"profilePicture" db:"profile_picture"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

// UserStats - счётчики связей пользователя для карточки профиля
type UserStats struct {
	Threads   int `json:"threads" db:"threads"`
	Likes     int `json:"likes" db:"likes"`
	Replies   int `json:"replies" db:"replies"`
	Followers int `json:"followers" db:"followers"`
	Following int `json:"following" db:"following"`
}

type UserProfile struct {
	User
	Stats UserStats `json:"stats"`
}

type Thread struct {
	ThreadID  string         `json:"threadId" db:"thread_id"`
	Content   string         `json:"content" db:"content"`
	Images    pq.StringArray `json:"images" db:"images"`
	AuthorID  string         `json:"authorId" db:"author_id"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	Author    *User          `json:"author" db:"-"`
	Likes     []Like         `json:"likes" db:"-"`
	Replies   []Reply        `json:"replies" db:"-"`
}

type Reply struct {
	ReplyID   string         `json:"replyId" db:"reply_id"`
	ThreadID  string         `json:"threadId" db:"thread_id"`
	AuthorID  string         `json:"authorId" db:"author_id"`
	Content   string         `json:"content" db:"content"`
	Images    pq.StringArray `json:"images" db:"images"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}

type Like struct {
	LikeID   string `json:"likeId" db:"like_id"`
	UserID   string `json:"userId" db:"user_id"`
	ThreadID string `json:"threadId" db:"thread_id"`
}

type Follow struct {
	FollowID    string `json:"followId" db:"follow_id"`
	FollowerID  string `json:"followerId" db:"follower_id"`
	FollowingID string `json:"followingId" db:"following_id"`
}

// Pagination - блок пагинации, который уходит клиенту и кладётся в кеш
type Pagination struct {
	TotalThread int `json:"totalThread"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

type ThreadPage struct {
	Data       []Thread   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CachedThreadPage - формат документа в redis под ключом threads_page_<n>
type CachedThreadPage struct {
	Message    string     `json:"message"`
	Data       []Thread   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type UserPagination struct {
	TotalUsers  int `json:"totalUsers"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

type UserPage struct {
	Users      []User         `json:"users"`
	Pagination UserPagination `json:"pagination"`
}

// ThreadMessage - тело сообщения в очереди создания тредов
type ThreadMessage struct {
	ThreadID string   `json:"threadId"`
	Content  string   `json:"content"`
	Image    []string `json:"image"`
	User     string   `json:"user"`
}
